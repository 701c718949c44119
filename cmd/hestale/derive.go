package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/TheusHen/hestale/hestale"
	"github.com/TheusHen/hestale/hestale/config"
	"github.com/TheusHen/hestale/hestale/crypto"
	"github.com/TheusHen/hestale/hestale/passphrase"
)

type deriveParams struct {
	password       string
	static         string
	passphrase     string
	save           bool
	beta           bool
	passphraseFile string
	configPath     string
	noClipboard    bool
	noEffects      bool
	verbose        bool
}

func (a *app) runDerive(ctx context.Context, args []string) error {
	var params deriveParams
	flagSet := pflag.NewFlagSet("hestale", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	flagSet.StringVarP(&params.password, "password", "p", "", "memorable password that is easy to remember")
	flagSet.StringVarP(&params.static, "static", "s", "", "static data, usually the service name")
	flagSet.StringVarP(&params.passphrase, "passphrase", "c", "", "passphrase used to derive the key (default: read from the passphrase file)")
	flagSet.BoolVarP(&params.save, "save", "S", false, "save the passphrase to the passphrase file")
	flagSet.BoolVarP(&params.beta, "beta", "b", false, "use the experimental strategy")
	addCommonFlags(flagSet, &params.passphraseFile, &params.configPath, &params.verbose)
	flagSet.BoolVar(&params.noClipboard, "no-clipboard", false, "do not copy the password to the clipboard")
	flagSet.BoolVar(&params.noEffects, "no-effects", false, "print without typewriter delays")
	flagSet.Usage = func() { printUsage(a.stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &usageError{err: err}
	}
	if flagSet.NArg() > 0 {
		return usagef("unexpected argument: %s", flagSet.Arg(0))
	}

	cfg, err := a.loadConfig(flagSet, params.configPath, params.passphraseFile)
	if err != nil {
		return err
	}
	if params.beta {
		cfg.Strategy = hestale.Experimental.String()
	}
	if params.noClipboard {
		cfg.Clipboard = false
	}
	if params.noEffects {
		cfg.Effects.Enabled = false
	}
	logger := a.logger(params.verbose)

	phrase, err := a.resolvePassphrase(logger, cfg.PassphraseFile, params.passphrase, flagSet.Changed("passphrase"), params.save)
	if err != nil {
		return err
	}

	strategy, err := hestale.NewStrategy(cfg.Kind(), cfg.StretchParams())
	if err != nil {
		return err
	}
	logger.Debug("deriving password", "strategy", strategy.Kind().String())

	fx := newEffects(a.stdout, cfg.Effects, a.stdoutTTY)
	output, err := a.derive(ctx, fx, strategy, params.static, params.password, phrase)
	if err != nil {
		return err
	}

	if err := fx.serial(ctx, "-- Your Password --", cfg.Effects.BannerColor); err != nil {
		return err
	}
	if err := fx.reveal(ctx, output); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout)

	if cfg.Clipboard {
		if err := a.copyToClip(output); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
		} else {
			logger.Debug("password copied to clipboard")
		}
	}

	if a.interactive() {
		if err := fx.serial(ctx, "Enter for exit..", cfg.Effects.ExitColor); err != nil {
			return err
		}
		if _, err := a.readLine(); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}
	return nil
}

// derive prompts for whatever the flags left out and runs the strategy.
// Rejected values that came from a prompt are asked for again; rejected
// flag values are returned as errors.
func (a *app) derive(ctx context.Context, fx *effects, strategy hestale.Strategy, static, password, phrase string) (string, error) {
	staticPrompted := static == ""
	passwordPrompted := password == ""
	for {
		var err error
		if password == "" {
			if password, err = a.ask(ctx, fx, "Password", true); err != nil {
				return "", err
			}
		}
		if static == "" {
			if static, err = a.ask(ctx, fx, "Static", false); err != nil {
				return "", err
			}
		}

		output, err := strategy.Derive(hestale.Request{Static: static, Password: password, Passphrase: phrase})
		if err == nil {
			return output, nil
		}

		switch rejectedOperand(err, static, password) {
		case "static":
			if !staticPrompted {
				return "", fmt.Errorf("static: %w", err)
			}
			static = ""
		case "password":
			if !passwordPrompted {
				return "", fmt.Errorf("password: %w", err)
			}
			password = ""
		default:
			return "", err
		}
		fmt.Fprintf(a.stderr, "%v, try again\n", err)
	}
}

// rejectedOperand names the input that caused a mixing error.
func rejectedOperand(err error, static, password string) string {
	var charErr *crypto.CharacterError
	switch {
	case errors.Is(err, crypto.ErrEmptyOperand) && static == "":
		return "static"
	case errors.Is(err, crypto.ErrEmptyOperand) && password == "":
		return "password"
	case errors.As(err, &charErr) && charErr.Operand == "word1":
		return "static"
	case errors.As(err, &charErr) && charErr.Operand == "word2":
		return "password"
	default:
		return ""
	}
}

// resolvePassphrase returns the normalized passphrase from the flag or the
// store, saving the flag value when asked to.
func (a *app) resolvePassphrase(logger *slog.Logger, path, flagValue string, fromFlag, save bool) (string, error) {
	if fromFlag {
		phrase := passphrase.Normalize(flagValue)
		if save {
			if phrase == "" {
				return "", usagef("--save needs a non-empty --passphrase")
			}
			if err := passphrase.Store(path, phrase); err != nil {
				return "", err
			}
			logger.Info("passphrase saved", "path", path)
		}
		return phrase, nil
	}
	if save {
		logger.Warn("--save has no effect without --passphrase")
	}

	phrase, err := passphrase.Load(path)
	switch {
	case errors.Is(err, passphrase.ErrNotFound):
		return "", fmt.Errorf("%w (set one with --passphrase and --save, see --help)", err)
	case errors.Is(err, passphrase.ErrEmpty):
		logger.Warn("saved passphrase is empty", "path", path)
		return "", nil
	case err != nil:
		return "", err
	}
	logger.Debug("passphrase loaded", "path", path)
	return phrase, nil
}

// loadConfig resolves the config file and applies --passphrase-file.
func (a *app) loadConfig(flagSet *pflag.FlagSet, configPath, passphraseFile string) (config.Config, error) {
	cfg, err := config.Resolve(configPath, a.getenv)
	if err != nil {
		return config.Config{}, err
	}
	if flagSet.Changed("passphrase-file") {
		if passphraseFile == "" {
			return config.Config{}, usagef("--passphrase-file is empty")
		}
		cfg.PassphraseFile = passphraseFile
	}
	return cfg, nil
}

func addCommonFlags(flagSet *pflag.FlagSet, passphraseFile, configPath *string, verbose *bool) {
	flagSet.StringVarP(passphraseFile, "passphrase-file", "f", "", "passphrase store (default: passphrase.txt or the config value)")
	flagSet.StringVar(configPath, "config", "", "YAML config file (default: $HESTALE_CONFIG)")
	flagSet.BoolVarP(verbose, "verbose", "v", false, "log debug messages to stderr")
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `hestale derives the same password every time from a memorable password,
a static label (usually the service name) and a secret passphrase.
Nothing but the optional passphrase file is ever written.

Usage:
  hestale [flags]
  hestale backup [flags]       split the passphrase into recovery shares
  hestale recover [flags] ...  rebuild the passphrase from shares
  hestale version

Flags:
%s`, flagSet.FlagUsages())
}
