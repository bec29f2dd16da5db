package telegram

import (
	"fmt"
	"strings"
	"time"

	"btc-signal-bot/pkg/utils"
)

// FormatBuySignalMessage formats the oversold alert into a Markdown string for Telegram.
func FormatBuySignalMessage(rsi, threshold float64, at time.Time) string {
	var builder strings.Builder

	builder.WriteString("📈 *Bitcoin Buy Signal Detected!* 🚀\n\n")
	builder.WriteString(fmt.Sprintf("The daily RSI has dropped to *%.2f*, which is below the oversold threshold of %.0f.\n\n", rsi, threshold))
	builder.WriteString("This could indicate a potential buying opportunity.\n\n")
	builder.WriteString(fmt.Sprintf("%s\n\n", utils.PrettyDate(at)))
	builder.WriteString("_Disclaimer: This is not financial advice. Always do your own research._")
	return builder.String()
}

// FormatStatusMessage formats the no-signal reply used by the /rsi command.
func FormatStatusMessage(rsi, threshold float64, at time.Time) string {
	return fmt.Sprintf("🔎 Daily Bitcoin RSI: *%.2f* (oversold threshold %.0f)\n%s", rsi, threshold, utils.PrettyDate(at))
}
