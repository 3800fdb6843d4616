package analytics

const (
	MessageEmpty   = "خطا در دریافت پاسخ از هوش مصنوعی."
	MessageFailure = "متاسفانه مشکلی در ارتباط با هوش مصنوعی پیش آمده است."
)

// OrdersPrompt asks for a short Persian summary of the given orders JSON.
func OrdersPrompt(ordersJSON []byte) string {
	return `You are a supply chain assistant. Analyze the following orders in Persian (Farsi).
Provide a brief summary of total sales, best selling items, and any actionable insights for the supplier.
IMPORTANT: Format all currency amounts with 3-digit separators (e.g., 18,000,000) for readability.
Keep it professional and concise.

Orders Data: ` + string(ordersJSON)
}
