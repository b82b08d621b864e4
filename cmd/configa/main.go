package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/configa/internal/application"
	"github.com/eugenenazirov/configa/internal/config"
	"github.com/eugenenazirov/configa/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("configa", "Inspect INI configuration files through typed accessors")
	logLevel := kingpinApp.Flag("log-level", "Log level for diagnostics").Default("warn").Enum("debug", "info", "warn", "error")

	getCmd := kingpinApp.Command("get", "Print one option of a section")
	getFile := getCmd.Arg("file", "INI file to read").Required().String()
	getSection := getCmd.Arg("section", "Section name").Required().String()
	getOption := getCmd.Arg("option", "Option name").Required().String()
	getRequired := getCmd.Flag("required", "Exit with an error when the option is missing").Bool()
	getCast := getCmd.Flag("cast", "Cast applied to the value").Default("string").Enum("string", "int")
	getList := getCmd.Flag("list", "Split the value on commas").Bool()
	getOutput := getCmd.Flag("output", "Output format").Short('o').Default(formatYAML).Enum(formatYAML, formatJSON)

	dictCmd := kingpinApp.Command("dict", "Print a whole section as a dictionary")
	dictFile := dictCmd.Arg("file", "INI file to read").Required().String()
	dictSection := dictCmd.Arg("section", "Section name").Required().String()
	dictRequired := dictCmd.Flag("required", "Exit with an error when the section is missing").Bool()
	dictCast := dictCmd.Flag("cast", "Cast applied to values").Default("string").Enum("string", "int")
	dictKeyCast := dictCmd.Flag("key-cast", "Cast applied to keys").Default("string").Enum("string", "int")
	dictKeyCase := dictCmd.Flag("key-case", "Normalize key case").Default("none").Enum("none", "upper", "lower")
	dictList := dictCmd.Flag("list", "Split values on commas").Bool()
	dictOutput := dictCmd.Flag("output", "Output format").Short('o').Default(formatYAML).Enum(formatYAML, formatJSON)

	sectionsCmd := kingpinApp.Command("sections", "List the sections of a file")
	sectionsFile := sectionsCmd.Arg("file", "INI file to read").Required().String()
	sectionsOutput := sectionsCmd.Flag("output", "Output format").Short('o').Default(formatYAML).Enum(formatYAML, formatJSON)

	serveCmd := kingpinApp.Command("serve", "Serve a file over a read-only HTTP API")
	configFile := serveCmd.Flag("config", "Path to the server's INI settings file").String()
	inspectFile := serveCmd.Flag("file", "INI file to inspect").String()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	logger, err := logging.New(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case getCmd.FullCommand():
		err = runGet(os.Stdout, logger, getRequest{
			file:     *getFile,
			section:  *getSection,
			option:   *getOption,
			required: *getRequired,
			cast:     *getCast,
			list:     *getList,
			format:   *getOutput,
		})
	case dictCmd.FullCommand():
		err = runDict(os.Stdout, logger, dictRequest{
			file:     *dictFile,
			section:  *dictSection,
			required: *dictRequired,
			cast:     *dictCast,
			keyCast:  *dictKeyCast,
			keyCase:  *dictKeyCase,
			list:     *dictList,
			format:   *dictOutput,
		})
	case sectionsCmd.FullCommand():
		err = runSections(os.Stdout, logger, *sectionsFile, *sectionsOutput)
	case serveCmd.FullCommand():
		overrides := &config.CLIOverrides{
			ConfigFile: *configFile,
		}
		if *inspectFile != "" {
			overrides.InspectFile = inspectFile
		}
		if *port != "" {
			overrides.Port = port
		}
		if *rateLimitRPSFlag >= 0 {
			overrides.RateLimitRPS = rateLimitRPSFlag
		}
		if *rateLimitBurstFlag >= 0 {
			overrides.RateLimitBurst = rateLimitBurstFlag
		}
		err = serve(overrides, logger)
	}

	if err := application.ExitOnMissing(logger, err); err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func serve(overrides *config.CLIOverrides, logger *zap.Logger) error {
	cfg, err := config.Load(overrides, logger)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if level := cfg.LogLevel(); level != "" {
		if leveled, err := logging.New(level); err == nil {
			logger = leveled
			defer func() {
				_ = logger.Sync()
			}()
		} else {
			logger.Warn("ignoring invalid log level", zap.String("level", level), zap.Error(err))
		}
	}

	app, err := application.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod(), logger)
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
