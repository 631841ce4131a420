package constants

// Response messages
const (
	// MessageRecordAdded is returned when no record existed for the name
	MessageRecordAdded = "Record added successfully!"
	// MessageRecordExists is returned when a record already existed for the name.
	// A new record is still appended; nothing is overwritten.
	MessageRecordExists = "Record exists and updated!"
	// MessageNoRecord is returned when a search finds nothing
	MessageNoRecord = "No record found for that name."
)

// Storage names
const (
	// RecordsCollection is the MongoDB collection holding name/address documents
	RecordsCollection = "records"
)

// Request handling constants
const (
	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
)
