// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/depmanifest/internal/assetio"
	"github.com/petar-djukic/depmanifest/internal/manifestdiff"
)

// errManifestsDiffer is returned by "diff --exit-code" when the manifests
// are not equivalent.
var errManifestsDiffer = errors.New("manifests differ")

// newDiffCmd creates the "diff" command.
func newDiffCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two dependency manifests",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, v, args[0], args[1])
		},
	}

	cmd.Flags().Bool("lines", false, "Show a line diff of the JSON instead of a summary")
	cmd.Flags().Bool("exit-code", false, "Fail when the manifests differ")
	v.BindPFlag("diff-lines", cmd.Flags().Lookup("lines"))
	v.BindPFlag("diff-exit-code", cmd.Flags().Lookup("exit-code"))

	return cmd
}

func runDiff(cmd *cobra.Command, v *viper.Viper, oldPath, newPath string) error {
	old, err := assetio.ReadManifest(nil, oldPath)
	if err != nil {
		return err
	}
	cur, err := assetio.ReadManifest(nil, newPath)
	if err != nil {
		return err
	}

	report := manifestdiff.Compare(old, cur)

	out := cmd.OutOrStdout()
	if v.GetBool("diff-lines") {
		text, err := manifestdiff.LineDiff(old, cur)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	} else {
		fmt.Fprint(out, manifestdiff.Format(report))
	}

	if v.GetBool("diff-exit-code") && !report.Empty() {
		return errManifestsDiffer
	}
	return nil
}
