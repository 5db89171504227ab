package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"publigo/config"
	"publigo/database"
	"publigo/logger"
	"publigo/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			if err := database.CloseDB(); err != nil {
				logger.Warning("close db err:", err)
			}
			logger.CloseLogger()
			return
		}
	}
}

func resetPassword(login string, password string) {
	if login == "" || password == "" {
		fmt.Println("both --login and --password are required")
		return
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := resetUserPassword(login, password); err != nil {
		fmt.Println("reset password failed:", err)
	} else {
		fmt.Println("reset password success")
	}
}

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: "publigo",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the API server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var login string
	var password string
	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Reset a user's password from the command line",
		Run: func(cmd *cobra.Command, args []string) {
			resetPassword(login, password)
		},
	}
	settingCmd.Flags().StringVar(&login, "login", "", "login of the user")
	settingCmd.Flags().StringVar(&password, "password", "", "new plaintext password")

	rootCmd.AddCommand(runCmd, settingCmd)

	if len(os.Args) <= 1 {
		runWebServer()
		return
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
