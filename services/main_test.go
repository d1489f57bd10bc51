package services

import (
	"os"
	"testing"

	"formulario.link/configs/configslog"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	os.Exit(m.Run())
}
