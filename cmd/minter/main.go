package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/skip-mev/minter/actions"
	"github.com/skip-mev/minter/campaign"
	"github.com/skip-mev/minter/config"
	logging "github.com/skip-mev/minter/log"
	"github.com/skip-mev/minter/types"
)

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	var (
		env  = config.ParseEnv()
		args = parseArgs()
	)

	if args.PrintDefault {
		// printed raw, no decoding needed
		_, _ = os.Stdout.Write(types.DefaultRunSpecYAML())
		return
	}

	logger, _ := logging.DefaultLogger(env.DevLogging, env.LogDir)
	defer logging.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = config.WithEnv(ctx, env)
	ctx = logging.WithLogger(ctx, logger)

	exitIfErr := func(err error, message string) {
		if err == nil {
			return
		}

		err = pkgerrors.Wrap(err, message)
		saveConfigError(err, args.ResultsPath, logger)
		logger.Fatal("Failure", zap.Error(err))
	}

	// register action configs so the run spec can decode them.
	actions.Register()

	spec, err := loadSpec(args.ConfigPath)
	exitIfErr(err, "failed to load run spec")
	if args.WalletsPath != "" {
		spec.WalletsFile = args.WalletsPath
	}
	args.ResultsPath = spec.ResultsFile

	logger.Info("loaded run spec",
		zap.String("name", spec.Name),
		zap.Int("actions", len(spec.Actions)),
		logging.FieldOnLevel(ctx, zap.DebugLevel, zap.Any("spec", spec)))

	client, err := campaign.Dial(ctx, spec.RPC, spec.RequestTimeout)
	exitIfErr(err, "failed to connect to node")
	defer client.Close()

	c, err := campaign.New(ctx, logger, spec, client)
	exitIfErr(err, "failed to create campaign")

	if _, err = c.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("run interrupted")
			return
		}
		logger.Fatal("failed to run campaign", zap.Error(err))
	}
}

type cliArgs struct {
	config.Config
	ResultsPath  string
	PrintDefault bool
}

func parseArgs() cliArgs {
	configPath := flag.String("config", "", "Path to run spec file; the built-in spec is used when empty")
	walletsPath := flag.String("wallets", "", "Path to private keys file, one key per line; overrides wallets_file")
	printDefault := flag.Bool("print-default", false, "Print the built-in run spec and exit")
	flag.Parse()

	return cliArgs{
		Config: config.Config{
			ConfigPath:  *configPath,
			WalletsPath: *walletsPath,
		},
		PrintDefault: *printDefault,
	}
}

func loadSpec(path string) (types.RunSpec, error) {
	if path == "" {
		return types.DefaultRunSpec()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.RunSpec{}, err
	}
	return types.ParseRunSpec(data)
}

func saveConfigError(err error, path string, logger *zap.Logger) {
	if path == "" {
		return
	}
	out := types.NewRunResult()
	out.Error = err.Error()

	if errSave := types.SaveResults(out, path, logger); errSave != nil {
		logger.Error("failed to save results", zap.Error(errSave))
	}
}
