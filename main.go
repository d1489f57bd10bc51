package main

import (
	"os"
	"os/signal"
	"syscall"

	"formulario.link/configs"
	"formulario.link/configs/configsdatabase"
	"formulario.link/configs/configslog"
	"formulario.link/pkg/renderer"
	"formulario.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	engine := html.New("./views", ".html")
	engine.AddFunc("hasOption", renderer.HasOption)

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/public_layout",
		AppName:           "formulario.link",
		EnablePrintRoutes: false,
	})

	routes.SetupRoutes(app)

	// Encerramento limpo em SIGINT/SIGTERM.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Sinal de encerramento recebido, desligando...")
		_ = app.Shutdown()
	}()

	addr := configs.AppAddr()
	configslog.SLog.Infof("Servidor HTTP escutando em %s", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Servidor HTTP terminou com erro", zap.Error(err))
	}
}
