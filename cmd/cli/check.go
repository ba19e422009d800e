// Copyright 2026 Arcentra Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"

	"github.com/arcentrix/filereporter/internal/config"
	"github.com/arcentrix/filereporter/pkg/rollover"
	"github.com/spf13/cobra"
)

// newCheckCmd validates a config file and opens the access log it points at.
func newCheckCmd() *cobra.Command {
	var confPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config and open the access log once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfigFile(confPath)
			if err != nil {
				return err
			}
			return checkAccessLog(cmd, conf.Reporter)
		},
	}
	cmd.Flags().StringVarP(&confPath, "conf", "c", "conf.d/config.toml", "config file path")
	return cmd
}

func checkAccessLog(cmd *cobra.Command, conf rollover.Conf) error {
	if !conf.Enabled() {
		fmt.Fprintln(cmd.OutOrStdout(), "access log: disabled")
		return nil
	}
	// never move a live file aside or delete archives
	retainDays := conf.RetainDays
	conf.Append = true
	conf.RetainDays = 0

	var failures []error
	sink, err := rollover.New(conf, rollover.WithErrorHandler(func(err error) {
		failures = append(failures, err)
	}))
	if err != nil {
		return err
	}
	if err := sink.Open(); err != nil {
		return fmt.Errorf("open access log: %w", err)
	}
	path, next := sink.Path(), sink.NextRotation()
	_ = sink.Close()
	if len(failures) > 0 {
		return errors.Join(failures...)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "access log: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "next rotation: %s\n", next.Format("2006-01-02 15:04:05 -0700"))
	if retainDays > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "retain days: %d\n", retainDays)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "retain days: forever")
	}
	return nil
}
