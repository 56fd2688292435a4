// Command assist runs finance commands from the command line or as a
// line-oriented JSON tool protocol for assistant integrations.
//
// Usage:
//
//	assist '{"name":"spending_summary"}'
//	assist -stdin  (one JSON request per line, one JSON response per line)
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"fintrack/internal/command"
	"fintrack/internal/config"
	"fintrack/internal/services/currency"
	"fintrack/internal/services/storage"
	"fintrack/internal/services/store"
)

type response struct {
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func main() {
	stdin := flag.Bool("stdin", false, "Read JSON requests line by line from stdin")
	flag.Parse()

	cfg := config.Load()

	files, err := storage.New(cfg.DataDirectory)
	if err != nil {
		log.Fatalf("Could not initialize storage: %v", err)
	}
	if files.IsEncrypted() && !files.IsUnlocked() {
		if password := os.Getenv("FINTRACK_PASSWORD"); password != "" {
			if err := files.Unlock(password); err != nil {
				log.Fatalf("Could not unlock storage: %v", err)
			}
		} else {
			log.Fatal("Storage is encrypted; set FINTRACK_PASSWORD")
		}
	}

	gateway := store.New(files)
	rates := currency.New(currency.NewHTTPProvider(cfg.RatesURL, cfg.RatesTimeout))
	dispatcher := command.New(gateway, rates)

	if *stdin {
		runLoop(dispatcher)
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assist <json-request> | assist -stdin")
		os.Exit(2)
	}
	out := runOne(dispatcher, []byte(flag.Arg(0)))
	json.NewEncoder(os.Stdout).Encode(out)
	if out.Error != "" {
		os.Exit(1)
	}
}

func runLoop(dispatcher *command.Dispatcher) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		encoder.Encode(runOne(dispatcher, line))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading stdin: %v", err)
	}
}

func runOne(dispatcher *command.Dispatcher, raw []byte) response {
	var req command.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return response{Error: "invalid request: " + err.Error()}
	}

	result, err := dispatcher.Dispatch(req)
	if err != nil {
		return response{Error: err.Error()}
	}
	return response{Result: result}
}
