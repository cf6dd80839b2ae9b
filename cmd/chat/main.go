package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"AdvisoryAssistant/internal/api/assistant"
	"AdvisoryAssistant/pkg/log"
	websocketPkg "AdvisoryAssistant/pkg/websocket"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("CHAT_WS_URL")
	if defaultURL == "" {
		defaultURL = "ws://localhost:" + envOr("APP_PORT", "3000") + "/api/v1/assistant/ws"
	}

	url := flag.String("url", defaultURL, "chat websocket url")
	session := flag.String("session", "", "resume an existing session id")
	timeout := flag.Duration("timeout", 30*time.Second, "per message timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := websocketPkg.Dial(ctx, *url, websocketPkg.Options{
		SessionID: *session,
		OnTyping:  func() { fmt.Print("assistant is typing...\r") },
	})
	if err != nil {
		log.Fatal(log.Fields{"url": *url, "error": err.Error()}, "Failed to connect to chat")
	}
	defer client.Close()

	fmt.Println("Connected. Type a message, a number to pick an option, or /quit.")

	var options []string
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/session":
			fmt.Println(client.SessionID())
			continue
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			line = options[n-1]
		}

		turnCtx, cancel := context.WithTimeout(ctx, *timeout)
		frame, err := client.Send(turnCtx, line)
		cancel()

		var serverErr *websocketPkg.ServerError
		switch {
		case errors.As(err, &serverErr):
			fmt.Println("error:", serverErr.Message)
			continue
		case err != nil:
			log.Error(log.Fields{"error": err.Error()}, "Chat connection lost")
			return
		}

		options = render(frame)
	}
}

func render(frame assistant.ServerFrame) []string {
	if frame.Reply == nil {
		return nil
	}

	fmt.Printf("\n%s\n", frame.Reply.Message)
	if frame.Reply.Form != "" {
		fmt.Printf("[form: %s]\n", frame.Reply.Form)
	}
	for i, opt := range frame.Reply.Options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Println()

	return frame.Reply.Options
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
