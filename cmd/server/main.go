/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */
// Package main is the entry point for starting the eligibility server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/asgardeo/eligibility/internal/system/cache"
	"github.com/asgardeo/eligibility/internal/system/cert"
	"github.com/asgardeo/eligibility/internal/system/config"
	"github.com/asgardeo/eligibility/internal/system/database/provider"
	"github.com/asgardeo/eligibility/internal/system/identity"
	"github.com/asgardeo/eligibility/internal/system/log"
)

const (
	shutdownTimeout = 15 * time.Second
	writeTimeout    = 120 * time.Second
)

func main() {
	logger := log.GetLogger()
	defer logger.Sync()

	serverHome := getServerHome(logger)

	cfg := initServerConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	mux := http.NewServeMux()
	registerServices(mux)

	startServer(logger, cfg, mux, serverHome)
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	serverHome := ""
	homeFlag := flag.String("home", "", "Path to the eligibility server home directory")
	flag.Parse()

	if *homeFlag != "" {
		logger.Info("Using server home from command line argument", log.String("home", *homeFlag))
		serverHome = *homeFlag
	} else {
		// If no command line argument is provided, use the current working directory.
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		serverHome = dir
	}

	return serverHome
}

// initServerConfigurations loads deployment.yaml and initializes the runtime.
func initServerConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := path.Join(serverHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}

	cache.StartCleanupRoutine()
	return cfg
}

// startServer serves requests until the process receives SIGINT or SIGTERM.
func startServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux, serverHome string) {
	server, serverAddr := createHTTPServer(logger, cfg, mux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.HTTPOnly {
		go func() {
			logger.Info("Eligibility server started (HTTP)...", log.String("address", serverAddr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("Failed to serve HTTP requests", log.Error(err))
			}
		}()
	} else {
		tlsConfig, err := cert.GetTLSConfig(cfg, serverHome)
		if err != nil {
			logger.Fatal("Failed to load TLS configuration", log.Error(err))
		}
		server.TLSConfig = tlsConfig
		go func() {
			logger.Info("Eligibility server started (HTTPS)...", log.String("address", serverAddr))
			if err := server.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("Failed to serve HTTPS requests", log.Error(err))
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down the server gracefully", log.Error(err))
	}
	cache.Reset()
	provider.CloseDBProvider()
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	handler := log.AccessLogHandler(logger, identity.Middleware(mux))
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Mitigate Slowloris attacks
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
