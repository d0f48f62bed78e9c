package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"pos-intelligence-be/internal/dto"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Terminal REPL against a running REST instance. One session per run.
func main() {
	baseURL := os.Getenv("ASSISTANT_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}

	sessionId := uuid.NewString()
	client := &http.Client{Timeout: 120 * time.Second}

	header := color.New(color.FgCyan, color.Bold)
	prompt := color.New(color.FgGreen, color.Bold)
	meta := color.New(color.FgYellow)
	answerColor := color.New(color.FgWhite)

	header.Println("POS Intelligence Assistant")
	fmt.Printf("session: %s\n", sessionId)
	fmt.Println("Ask about inventory, specs, prices, or order statuses. Ctrl+D to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		res, err := ask(client, baseURL, sessionId, question)
		if err != nil {
			log.Printf("request failed: %v", err)
			continue
		}

		if res.Intent != "" {
			meta.Printf("[%s]", res.Intent)
			if res.StandaloneQuestion != "" {
				meta.Printf(" (interpreted as: %s)", res.StandaloneQuestion)
			}
			fmt.Println()
		}
		answerColor.Println(res.Answer)
		fmt.Println()
	}
}

func ask(client *http.Client, baseURL, sessionId, question string) (*dto.AskResponse, error) {
	body, err := json.Marshal(dto.AskRequest{
		SessionId: sessionId,
		Question:  question,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(baseURL+"/api/assistant/v1/ask", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    dto.AskResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, fmt.Errorf("server error: %s", envelope.Message)
	}
	return &envelope.Data, nil
}
