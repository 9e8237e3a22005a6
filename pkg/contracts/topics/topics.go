package topics

const (
	// Quotes de props capturadas pelo ingest
	PropQuotes = "prop_quotes"

	// DLQ para batches que falharam no processamento
	PropQuotesDLQ = "prop_quotes_dlq"
)
