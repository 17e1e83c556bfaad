// Copyright (C) 2026 Noldarim
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"
)

func configCommand(args []string, stdout, stderr io.Writer) error {
	var opts commonOptions
	fs := newFlagSet("config", stderr)
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := opts.load(fs)
	if err != nil {
		return err
	}

	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}
