package frankfurter

var names = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"BRL": "Brazilian Real",
	"INR": "Indian Rupee",
	"KRW": "South Korean Won",
	"SGD": "Singapore Dollar",
	"NZD": "New Zealand Dollar",
	"MXN": "Mexican Peso",
	"RUB": "Russian Ruble",
	"ZAR": "South African Rand",
	"TRY": "Turkish Lira",
	"SEK": "Swedish Krona",
	"NOK": "Norwegian Krone",
	"DKK": "Danish Krone",
	"PLN": "Polish Zloty",
	"CZK": "Czech Koruna",
	"HUF": "Hungarian Forint",
	"ILS": "Israeli Shekel",
	"AED": "UAE Dirham",
	"SAR": "Saudi Riyal",
	"THB": "Thai Baht",
	"MYR": "Malaysian Ringgit",
	"IDR": "Indonesian Rupiah",
	"PHP": "Philippine Peso",
	"VND": "Vietnamese Dong",
}

// Name returns the display name of a currency, or the code itself when unknown.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}
