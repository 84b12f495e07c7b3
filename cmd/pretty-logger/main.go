package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/adl-tools/pretty-logger/pkg/app"
	"github.com/adl-tools/pretty-logger/pkg/logging"
	"github.com/google/uuid"
)

func main() {
	cliArgs := app.ParseCLIArgs()

	// 1. Setup logging first.
	if err := os.MkdirAll(cliArgs.LogDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	logFileName := fmt.Sprintf("pretty-logger-%s.log", time.Now().Format("2006-01-02_15-04-05"))
	logPath := filepath.Join(cliArgs.LogDir, logFileName)

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		// Can't use logger yet, so print to stderr
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	mainLogger := logging.NewConsoleLogger(logFile)
	logging.SetDefault(mainLogger)

	if cliArgs.Verbose {
		logging.SetDebug(true)
		logging.Infof("Main: Verbose logging enabled.")
	}

	logging.Infof("Main: Session %s", uuid.NewString())
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				logging.Infof("Main: Build Time: %s", setting.Value)
			}
			if setting.Key == "vcs.revision" {
				logging.Infof("Main: Build Revision: %s", setting.Value)
			}
		}
	}
	if err := cliArgs.ResolveInputs(app.IsTerminal(os.Stdin)); err != nil {
		logging.Errorf("Main: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if len(cliArgs.Inputs) == 0 {
		logging.Warnf("Main: No inputs given, starting with an empty panel.")
	}

	// 2. Setup OS signal trapping
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	a := app.NewApp(mainLogger, cliArgs)

	go func() {
		<-sigChan
		if cliArgs.Output != app.OutputTUI {
			logging.Warnf("Main: Interrupted.")
			os.Exit(130)
		}
		a.RequestQuit()
	}()

	// 3. Run the application
	logging.Infof("Main: Application starting up.")
	if err := a.Run(); err != nil {
		logging.Errorf("Main: Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	a.Wait()

	logging.Infof("Main: Application exited gracefully.")
}
