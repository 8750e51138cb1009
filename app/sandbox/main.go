// Command sandbox serves a local stand-in for the transfers api, for
// developing and testing against without funds.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goimx/base/ctx"
	"github.com/x-xyz/goimx/base/goroutine"
	"github.com/x-xyz/goimx/base/log"
	bValidator "github.com/x-xyz/goimx/base/validator"
	"github.com/x-xyz/goimx/domain/collection"
	mmiddleware "github.com/x-xyz/goimx/middleware"
	sandbox_delivery "github.com/x-xyz/goimx/stores/sandbox/delivery/http"
	sandbox_repository "github.com/x-xyz/goimx/stores/sandbox/repository"
	sandbox_usecase "github.com/x-xyz/goimx/stores/sandbox/usecase"
)

func init() {
	pflag.String("config", "", "yaml config file")
	pflag.String("address", ":8080", "listen address")
	pflag.String("log-level", "info", "debug, info, warn or error")
	pflag.Parse()

	_ = viper.BindPFlag("config", pflag.Lookup("config"))
	_ = viper.BindPFlag("server.address", pflag.Lookup("address"))
	_ = viper.BindPFlag("log.level", pflag.Lookup("log-level"))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("app_name", "imx-sandbox")
	viper.SetDefault("sandbox.validity", 30*24*time.Hour)

	if file := viper.GetString("config"); file != "" {
		viper.SetConfigType("yaml")
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			panic(err)
		}
	}

	if err := log.SetLevel(viper.GetString("log.level")); err != nil {
		panic(err)
	}
}

func main() {
	// init echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middL.CORS)
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	repo := sandbox_repository.NewMemory()
	sandbox := sandbox_usecase.New(&sandbox_usecase.SandboxUseCaseCfg{
		Repo:     repo,
		Validity: viper.GetDuration("sandbox.validity"),
	})

	// collections listed in config are served from startup
	cols := []collection.Collection{}
	if err := viper.UnmarshalKey("sandbox.collections", &cols); err != nil {
		context.WithField("err", err).Error("viper.UnmarshalKey failed")
		os.Exit(1)
	}
	for _, col := range cols {
		if err := sandbox.RegisterCollection(context, col); err != nil {
			context.WithFields(log.Fields{
				"collection": col.Address,
				"err":        err,
			}).Error("sandbox.RegisterCollection failed")
			os.Exit(1)
		}
	}

	sandbox_delivery.New(e, sandbox)

	served := goroutine.RecoverableGo(func() {
		address := viper.GetString("server.address")
		context.WithField("address", address).Info("sandbox listening")
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	select {
	case sig := <-quit:
		log.Log().WithField("signal", sig).Info("received signal")
	case <-served:
		log.Log().Info("server stopped")
	}
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
