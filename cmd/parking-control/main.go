package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/joho/godotenv"

	"github.com/hadas32/smart-parking-hub/internal/log"
	"github.com/hadas32/smart-parking-hub/pkg/cli"
)

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

const usage = `
 * Mutating commands require logging in first (see the login command).
 * Listing parkings and spots works without a session.`

func Usage() {
	fmt.Printf("Usage: %s [OPTION...] COMMAND [ARG...]\n", os.Args[0])
	fmt.Printf("\nRun %s help COMMAND for more information. Valid COMMANDs are listed below.", os.Args[0])
	fmt.Println("")
	fmt.Println(usage)
	fmt.Println("")

	fmt.Printf("Available OPTIONs:\n")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Printf("Available COMMANDs:\n")
	maxLength := 0
	var labels []string
	for command := range commands {
		labels = append(labels, command)
		if len(command) > maxLength {
			maxLength = len(command)
		}
	}
	sort.Strings(labels)
	for _, command := range labels {
		info := commands[command]
		fmt.Printf("  %s%s %s\n", command, strings.Repeat(" ", maxLength-len(command)), info.help)
	}
}

func runCommand(hub *cli.Hub, args []string, timeout time.Duration) int {
	if err := execute(hub, args, timeout); err != nil {
		writeErr("Failed to execute command: %s", err)
		return 1
	}
	return 0
}

func runInteractiveShell(hub *cli.Hub, timeout time.Duration) int {
	scanner := bufio.NewScanner(os.Stdin)
	for fmt.Printf("> "); scanner.Scan(); fmt.Printf("> ") {
		args, err := shlex.Split(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			return 0
		}
		if err != nil {
			writeErr("Invalid command: %s", err)
			continue
		}
		runCommand(hub, args, timeout)
	}
	if err := scanner.Err(); err != nil {
		writeErr("Error reading command: %s", err)
		return 1
	}
	return 0
}

func main() {
	status := 1
	defer func() {
		os.Exit(status)
	}()

	var (
		debug          bool
		commandTimeout time.Duration
	)
	_ = godotenv.Load()
	config := cli.NewConfig()
	flag.Usage = Usage
	flag.BoolVar(&debug, "debug", false, "Enable verbose debugging messages")
	flag.DurationVar(&commandTimeout, "command-timeout", 10*time.Second, "Set timeout for commands sent to the service.")

	config.RegisterCommandLineFlags()
	flag.Parse()
	if !debug {
		if debugEnv, ok := os.LookupEnv("PARKING_VERBOSE"); ok {
			debug = debugEnv != "false" && debugEnv != "0"
		}
	}
	if debug {
		log.SetLevel(log.LevelDebug)
	}
	config.ReadFromEnvironment()
	if err := config.ReadConfigFile(); err != nil {
		writeErr("Error reading config file: %s", err)
		return
	}

	args := flag.Args()
	if len(args) > 0 && args[0] == "help" {
		if len(args) == 1 {
			Usage()
			status = 0
			return
		}
		info, ok := commands[args[1]]
		if !ok {
			writeErr("Unrecognized command: %s", args[1])
			return
		}
		info.Usage(args[1])
		status = 0
		return
	}

	hub, err := config.Connect()
	if err != nil {
		writeErr("Error: %s", err)
		return
	}
	defer config.SaveCache(hub.Cache)

	if flag.NArg() > 0 {
		status = runCommand(hub, flag.Args(), commandTimeout)
	} else {
		status = runInteractiveShell(hub, commandTimeout)
	}
}
