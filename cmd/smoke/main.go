package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v map[string]interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendChat(session, message string) (*http.Response, []byte, error) {
	jsonBody, _ := json.Marshal(map[string]string{
		"session": session,
		"message": message,
	})

	req, err := http.NewRequest("POST", baseURL+"/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout; story generation can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Storyteller API Smoke Test\n")

	session := "smoke-session"
	if len(os.Args) > 1 {
		session = os.Args[1]
	}

	// 1. Health check
	color.Yellow("\n1. Health Check")
	resp, err := http.Get(baseURL + "/health")
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. New story
	color.Yellow("\n2. Request a New Story")
	resp2, body, err := sendChat(session, "tell me a story about a lost kitten finding its family")
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp2.Status)
	prettyPrint(body)

	// 3. Refine it
	color.Yellow("\n3. Refine the Story")
	resp3, body, err := sendChat(session, "make the kitten orange")
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp3.Status)
	prettyPrint(body)

	// 4. Plain chat
	color.Yellow("\n4. Plain Chat Reply")
	resp4, body, err := sendChat(session, "thanks, that was lovely!")
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp4.Status)
	prettyPrint(body)

	color.Cyan("\n✨ Smoke test finished")
}
