/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/tablebridge/core/loop"
	"github.com/google/tablebridge/core/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP host and mount the configured table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		bundle, err := loadBundle(ctx, appCfg)
		if err != nil {
			return err
		}

		ui := loop.New(loop.Options{
			FrameInterval: appCfg.UI.FrameInterval,
			SyncTimeout:   appCfg.UI.SyncTimeout,
			Logger:        logger,
		})
		defer ui.Close()

		srv, err := server.NewServer(ui, logger)
		if err != nil {
			return err
		}
		id, err := srv.Mount(ctx, bundle)
		if err != nil {
			return fmt.Errorf("mounting table: %w", err)
		}

		httpServer := &http.Server{
			Addr:              appCfg.Server.Addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()
		logger.Info("listening", "addr", appCfg.Server.Addr, "page", "http://"+appCfg.Server.Addr+"/instances/"+id)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("could not start server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}
