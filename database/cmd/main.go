package main

import (
	"flag"

	"formulario.link/configs/configsdatabase"
	"formulario.link/configs/configslog"
	"formulario.link/database"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Executa as migrações do banco de dados")
	seedFlag := flag.Bool("seed", false, "Executa os seeders do banco de dados")
	flag.Parse()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	database.Initialize(configsdatabase.GetDB(), *migrateFlag, *seedFlag)
}
