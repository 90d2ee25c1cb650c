package holiday

// ParseCalendar is exported for testing
var ParseCalendar = parseCalendar
