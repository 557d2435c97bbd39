/*
Copyright 2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/drivingschool/enrollment-harness/pkg/constants"
	"github.com/drivingschool/enrollment-harness/test/api"
	"github.com/drivingschool/enrollment-harness/test/api/workflow"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

const (
	modeGeneral          = "general"
	modeDocumentApproval = "document-approval"
)

var errUnknownMode = errors.New("unknown mode")

// errRunFailed signals a completed run with failed steps. The summary has
// already been printed so it is not reported again.
var errRunFailed = errors.New("run failed")

type options struct {
	mode   string
	config *api.TestConfig
	zap    zap.Options
}

// addFlags binds command line overrides on top of the environment derived
// configuration.
func (o *options) addFlags(flags *pflag.FlagSet) {
	c := o.config

	flags.StringVar(&o.mode, "mode", modeDocumentApproval, "run to execute, one of general or document-approval")
	flags.StringVar(&c.BaseURL, "base-url", c.BaseURL, "platform base URL, overrides API_BASE_URL")
	flags.StringVar(&c.APIPrefix, "api-prefix", c.APIPrefix, "route prefix, may be empty")
	flags.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "per request timeout")
	flags.DurationVar(&c.TestTimeout, "test-timeout", c.TestTimeout, "overall run timeout")
	flags.StringVar(&c.Student.Email, "student-email", c.Student.Email, "student account email")
	flags.StringVar(&c.Student.Password, "student-password", c.Student.Password, "student account password")
	flags.StringVar(&c.Manager.Email, "manager-email", c.Manager.Email, "manager account email")
	flags.StringVar(&c.Manager.Password, "manager-password", c.Manager.Password, "manager account password")
	flags.StringVar(&c.RegistrationState, "registration-state", c.RegistrationState, "state used when registering students")
	flags.BoolVar(&c.ValidateResponses, "validate-responses", c.ValidateResponses, "validate 2xx responses against the platform contract")
	flags.BoolVar(&c.ExpectJWT, "expect-jwt", c.ExpectJWT, "fail when bearer tokens are not JWTs")
	flags.BoolVar(&c.LogRequests, "log-requests", c.LogRequests, "log outgoing requests")
	flags.BoolVar(&c.LogResponses, "log-responses", c.LogResponses, "log response bodies")

	zapFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	o.zap.BindFlags(zapFlags)

	flags.AddGoFlagSet(zapFlags)
}

// runner is implemented by every workflow.
type runner interface {
	Run(ctx context.Context) error
	Recorder() *workflow.Recorder
}

func (o *options) runner() (runner, error) {
	runOptions := workflow.OptionsFromConfig(o.config)

	switch o.mode {
	case modeGeneral:
		return workflow.NewGeneral(api.NewAPIClientWithConfig(o.config), runOptions), nil
	case modeDocumentApproval:
		return workflow.NewDocumentApproval(api.NewAPIClientWithConfig(o.config), api.NewAPIClientWithConfig(o.config), runOptions), nil
	}

	return nil, fmt.Errorf("%w %q", errUnknownMode, o.mode)
}

func (o *options) run(cmd *cobra.Command) error {
	o.zap.Development = o.zap.Development || o.config.DebugLogging

	log.SetLogger(zap.New(zap.UseFlagOptions(&o.zap)))

	logger := log.Log.WithName("init")
	logger.Info("workflow starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision, "mode", o.mode)

	if err := o.config.Validate(); err != nil {
		return err
	}

	r, err := o.runner()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if o.config.TestTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, o.config.TestTimeout)
		defer cancel()
	}

	ctx = log.IntoContext(ctx, log.Log.WithName(o.mode))

	runErr := r.Run(ctx)

	fmt.Fprint(cmd.OutOrStdout(), r.Recorder().Summary())

	if runErr != nil {
		logger.V(1).Info("run did not pass", "error", runErr.Error())

		return errRunFailed
	}

	return nil
}

func newCommand() *cobra.Command {
	o := &options{
		config: api.ReadTestConfig(),
	}

	cmd := &cobra.Command{
		Use:           constants.Application,
		Short:         "Exercise the driving school enrollment platform end to end",
		Version:       constants.VersionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd)
		},
	}

	o.addFlags(cmd.Flags())

	return cmd
}

func main() {
	if err := newCommand().Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
