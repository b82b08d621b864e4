package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/configa/pkg/configa"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

type getRequest struct {
	file     string
	section  string
	option   string
	required bool
	cast     string
	list     bool
	format   string
}

type dictRequest struct {
	file     string
	section  string
	required bool
	cast     string
	keyCast  string
	keyCase  string
	list     bool
	format   string
}

func openConfig(path string, logger *zap.Logger) (*configa.Config, error) {
	conf := configa.New(path, configa.WithLogger(logger))
	if err := conf.ParseErr(); err != nil {
		return nil, err
	}
	return conf, nil
}

func runGet(w io.Writer, logger *zap.Logger, req getRequest) error {
	conf, err := openConfig(req.file, logger)
	if err != nil {
		return err
	}

	cast, err := configa.ParseCast(req.cast)
	if err != nil {
		return err
	}
	opts := configa.ScalarOptions{Required: req.required, Cast: cast, List: req.list}

	value, found, err := conf.ParseScalar(req.section, req.option, opts)
	if err != nil {
		return err
	}
	if !found {
		return render(w, req.format, nil)
	}
	return render(w, req.format, value)
}

func runDict(w io.Writer, logger *zap.Logger, req dictRequest) error {
	conf, err := openConfig(req.file, logger)
	if err != nil {
		return err
	}

	keyCase, err := configa.ParseKeyCase(req.keyCase)
	if err != nil {
		return err
	}
	cast, err := configa.ParseCast(req.cast)
	if err != nil {
		return err
	}
	keyCast, err := configa.ParseCast(req.keyCast)
	if err != nil {
		return err
	}
	opts := configa.DictOptions{
		Required: req.required,
		Cast:     cast,
		KeyCast:  keyCast,
		KeyCase:  keyCase,
		List:     req.list,
	}

	dict, err := conf.ParseDict(req.section, opts)
	if err != nil {
		return err
	}
	return render(w, req.format, configa.StringMap(dict))
}

func runSections(w io.Writer, logger *zap.Logger, file, format string) error {
	conf, err := openConfig(file, logger)
	if err != nil {
		return err
	}
	return render(w, format, conf.Sections())
}

func render(w io.Writer, format string, payload any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case formatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
