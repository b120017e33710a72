/*
   Copyright 2025 The DIRPX Authors

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

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/errkit"
	"dirpx.dev/errkit/code"
	"dirpx.dev/errkit/ginx"
	"dirpx.dev/errkit/kit"
	"dirpx.dev/errkit/origin"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run a demo HTTP server using the kit",
		Long: `Serve starts an HTTP server whose routes fail in the ways the kit
handles, to try out logging and responses:

  GET  /healthz      200
  GET  /users/:id    404 unless id is 42
  POST /users        400 without an email
  GET  /boom         plain error, 500
  GET  /panic        panic, 500`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := kit.FromEnv(kit.WithPostgres())
			if err != nil {
				return err
			}
			if !k.Settings.Development() {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           newRouter(k),
				ReadHeaderTimeout: 5 * time.Second,
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			o := origin.New("errkit", "serve")
			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			k.Pipeline.Info(o, "Listening", addr)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			k.Pipeline.Info(o, "Stopped", addr)
			return nil
		},
	}
	c.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return c
}

type user struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func newRouter(k *kit.Kit) *gin.Engine {
	r := gin.New()
	r.Use(ginx.RequestID(), k.GinRecovery("DemoAPI"))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.GET("/users/:id", k.Gin("DemoAPI", "getUser", code.DatabaseError, func(c *gin.Context) error {
		id := c.Param("id")
		if id != "42" {
			return errkit.Fail(code.NotFound, "user "+id, http.StatusNotFound)
		}
		c.JSON(http.StatusOK, user{ID: id, Email: "user42@example.com"})
		return nil
	}))

	r.POST("/users", k.Gin("DemoAPI", "createUser", code.RegistrationFailed, func(c *gin.Context) error {
		var u user
		if err := c.ShouldBindJSON(&u); err != nil || u.Email == "" {
			return errkit.Fail(code.ValidationError, "email is required", http.StatusBadRequest)
		}
		u.ID = "43"
		k.Pipeline.LogSuccess(origin.New("DemoAPI", "createUser"), "user created", u)
		c.JSON(http.StatusCreated, u)
		return nil
	}))

	r.GET("/boom", k.Gin("DemoAPI", "boom", code.DatabaseError, func(*gin.Context) error {
		return errors.New("connection reset by peer")
	}))

	r.GET("/panic", func(*gin.Context) { panic("demo panic") })
	return r
}
