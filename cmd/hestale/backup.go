package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/TheusHen/hestale/hestale/backup"
	"github.com/TheusHen/hestale/hestale/passphrase"
)

// runBackup prints the passphrase as Reed-Solomon shares, one per line.
func (a *app) runBackup(_ context.Context, args []string) error {
	var (
		phraseFlag     string
		passphraseFile string
		configPath     string
		verbose        bool
		dataShards     int
		parityShards   int
	)
	flagSet := pflag.NewFlagSet("hestale backup", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	flagSet.StringVarP(&phraseFlag, "passphrase", "c", "", "passphrase to back up (default: read from the passphrase file)")
	flagSet.IntVar(&dataShards, "data", 0, "shares needed to recover (default: 3 or the config value)")
	flagSet.IntVar(&parityShards, "parity", 0, "extra shares that may be lost (default: 2 or the config value)")
	addCommonFlags(flagSet, &passphraseFile, &configPath, &verbose)
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

	cfg, err := a.loadConfig(flagSet, configPath, passphraseFile)
	if err != nil {
		return err
	}
	if flagSet.Changed("data") {
		cfg.Backup.DataShards = dataShards
	}
	if flagSet.Changed("parity") {
		cfg.Backup.ParityShards = parityShards
	}
	logger := a.logger(verbose)

	phrase := passphrase.Normalize(phraseFlag)
	if !flagSet.Changed("passphrase") {
		if phrase, err = passphrase.Load(cfg.PassphraseFile); err != nil {
			return err
		}
	}

	shares, err := backup.Split(phrase, cfg.Backup.DataShards, cfg.Backup.ParityShards)
	if err != nil {
		if errors.Is(err, backup.ErrInvalidConfig) {
			return &usageError{err: err}
		}
		return err
	}
	for _, s := range shares {
		fmt.Fprintln(a.stdout, s.Encode())
	}
	logger.Info("backup written",
		"shares", len(shares),
		"data", cfg.Backup.DataShards,
		"parity", cfg.Backup.ParityShards,
		"compressed", shares[0].Compressed,
	)
	return nil
}

// runRecover rebuilds the passphrase from shares given as arguments or,
// without arguments, one per line on stdin.
func (a *app) runRecover(_ context.Context, args []string) error {
	var (
		save           bool
		passphraseFile string
		configPath     string
		verbose        bool
	)
	flagSet := pflag.NewFlagSet("hestale recover", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	flagSet.BoolVarP(&save, "save", "S", false, "save the recovered passphrase instead of printing it")
	addCommonFlags(flagSet, &passphraseFile, &configPath, &verbose)
	flagSet.Usage = func() { printUsage(a.stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &usageError{err: err}
	}

	cfg, err := a.loadConfig(flagSet, configPath, passphraseFile)
	if err != nil {
		return err
	}
	logger := a.logger(verbose)

	lines := flagSet.Args()
	if len(lines) == 0 {
		if lines, err = a.readAllLines(); err != nil {
			return err
		}
	}
	shares, err := backup.DecodeShares(lines)
	if err != nil {
		return err
	}
	secret, err := backup.Combine(shares)
	if err != nil {
		return err
	}
	phrase := passphrase.Normalize(secret)
	logger.Debug("passphrase recovered", "shares", len(shares))

	if !save {
		fmt.Fprintln(a.stdout, phrase)
		return nil
	}
	if err := passphrase.Store(cfg.PassphraseFile, phrase); err != nil {
		return err
	}
	logger.Info("passphrase saved", "path", cfg.PassphraseFile)
	fmt.Fprintf(a.stderr, "passphrase saved to %s\n", cfg.PassphraseFile)
	return nil
}

func (a *app) readAllLines() ([]string, error) {
	var lines []string
	for {
		line, err := a.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, err
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
}
