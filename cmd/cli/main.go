package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

// The CLI talks to the API the way a browser would: it keeps a cookie jar so
// the session and classification cookies round-trip between commands of one
// invocation.
func main() {
	rootCmd := &cobra.Command{
		Use:   "vulnbank-cli",
		Short: "VulnBank CLI tool",
		Long:  `A command line interface for driving the VulnBank transfer API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the VulnBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Submit and confirm a transfer",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			description, _ := cmd.Flags().GetString("description")
			amount, _ := cmd.Flags().GetString("amount")
			fee, _ := cmd.Flags().GetString("fee")
			runTransfer(username, password, from, to, description, amount, fee)
		},
	}
	transferCmd.Flags().String("username", "", "Username to log in as")
	transferCmd.Flags().String("password", "", "Password")
	transferCmd.Flags().String("from", "", "Source account number")
	transferCmd.Flags().String("to", "", "Destination account number")
	transferCmd.Flags().String("description", "", "Transfer description")
	transferCmd.Flags().String("amount", "", "Amount to transfer")
	transferCmd.Flags().String("fee", "", "Fee rate in percent (server default when omitted)")
	rootCmd.AddCommand(transferCmd)

	activityCmd := &cobra.Command{
		Use:   "activity [account-number]",
		Short: "List account activity",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			runActivity(username, password, args[0])
		},
	}
	activityCmd.Flags().String("username", "", "Username to log in as")
	activityCmd.Flags().String("password", "", "Password")
	rootCmd.AddCommand(activityCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{Timeout: timeout, Jar: jar}
}

func login(client *http.Client, username, password string) {
	form := url.Values{"username": {username}, "password": {password}}
	resp, err := client.PostForm(baseURL+"/login", form)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		fmt.Printf("Login FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
}

func runTransfer(username, password, from, to, description, amount, fee string) {
	client := newClient()
	login(client, username, password)

	// GET the form first so the server stamps the classification cookie.
	resp, err := client.Get(baseURL + "/transfer")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	form := url.Values{
		"fromAccount": {from},
		"toAccount":   {to},
		"description": {description},
		"amount":      {amount},
	}
	if fee != "" {
		form.Set("fee", fee)
	}

	resp, err = client.PostForm(baseURL+"/transfer", form)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		fmt.Printf("Transfer executed\n%s\n", string(body))
		return
	case http.StatusOK:
		fmt.Printf("Transfer pending confirmation\n%s\n", string(body))
	default:
		fmt.Printf("Transfer FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	resp, err = client.PostForm(baseURL+"/transfer/confirm", url.Values{"action": {"confirm"}})
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Confirmation FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Printf("Transfer confirmed\n%s\n", string(body))
}

func runActivity(username, password, number string) {
	client := newClient()
	login(client, username, password)

	resp, err := client.Get(baseURL + "/accounts/" + number + "/activity")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Activity lookup FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var entries []map[string]any
	if err := json.Unmarshal(body, &entries); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Activity for %s (%d entries)\n", number, len(entries))
	for _, e := range entries {
		fmt.Printf("  %-25v %10v balance %10v  %s\n",
			e["description"], e["amount"], e["available_balance"], strings.SplitN(fmt.Sprint(e["date"]), "T", 2)[0])
	}
}
