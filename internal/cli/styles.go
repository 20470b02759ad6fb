package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nairsand/voicebank/internal/models"
)

// UI styles
var (
	bannerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Align(lipgloss.Center).
		Width(64)

	taglineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		Align(lipgloss.Center).
		Width(64).
		MarginBottom(1)

	balanceCardStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981")).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(0, 2)

	assistantStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6"))

	userStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B"))

	noticeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	creditStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	debitStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444"))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	listeningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F59E0B")).
		Bold(true)
)

// DisplayWelcomeBanner shows the startup banner
func DisplayWelcomeBanner() {
	banner := `

 ██╗   ██╗ ██████╗ ██╗ ██████╗███████╗██████╗  █████╗ ███╗   ██╗██╗  ██╗
 ██║   ██║██╔═══██╗██║██╔════╝██╔════╝██╔══██╗██╔══██╗████╗  ██║██║ ██╔╝
 ██║   ██║██║   ██║██║██║     █████╗  ██████╔╝███████║██╔██╗ ██║█████╔╝
 ╚██╗ ██╔╝██║   ██║██║██║     ██╔══╝  ██╔══██╗██╔══██║██║╚██╗██║██╔═██╗
  ╚████╔╝ ╚██████╔╝██║╚██████╗███████╗██████╔╝██║  ██║██║ ╚████║██║  ██╗
   ╚═══╝   ╚═════╝ ╚═╝ ╚═════╝╚══════╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝  ╚═╝
`
	fmt.Println(bannerStyle.Render(banner))
	fmt.Println(taglineStyle.Render("🎙  Your voice-driven banking assistant"))
}

// RenderBalance formats the balance card
func RenderBalance(name string, balance int64) string {
	return balanceCardStyle.Render(fmt.Sprintf("%s  ·  Balance ₹%d", name, balance))
}

// RenderTransactions formats the recent transaction list
func RenderTransactions(txns []*models.Transaction) string {
	if len(txns) == 0 {
		return mutedStyle.Render("  No transactions yet.")
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render("  Recent transactions:"))
	b.WriteString("\n")
	for _, txn := range txns {
		ts := txn.Timestamp.Format("02 Jan 15:04")
		if txn.Type == models.TransactionTransferOut {
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				mutedStyle.Render(ts),
				debitStyle.Render(fmt.Sprintf("-₹%d", txn.Amount)),
				txn.Description)
		} else {
			fmt.Fprintf(&b, "  %s  %s  %s\n",
				mutedStyle.Render(ts),
				creditStyle.Render(fmt.Sprintf("+₹%d", txn.Amount)),
				txn.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderAssistant formats an assistant chat line
func RenderAssistant(text string) string {
	return assistantStyle.Render("🤖 " + text)
}

// RenderUser formats a user chat line
func RenderUser(text string) string {
	return userStyle.Render("🗣  " + text)
}

// RenderNotice formats a transient notification
func RenderNotice(text string) string {
	return noticeStyle.Render("⚠  " + text)
}

// RenderListening formats the live transcript indicator
func RenderListening(transcript string) string {
	if transcript == "" {
		return listeningStyle.Render("🎙  Listening...")
	}
	return listeningStyle.Render("🎙  " + transcript)
}
