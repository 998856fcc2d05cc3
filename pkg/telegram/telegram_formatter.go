package telegram

import (
	"fmt"
	"time"

	"golang-bias-heatmap/pkg/utils"
)

// FormatErrorAlertMessage renders an alert for a task that exhausted its retries.
func FormatErrorAlertMessage(at time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 [ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(at), errType, errMsg, data)
}
