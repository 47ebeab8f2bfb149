package domain

var airlineCatalog = []ToolSpec{
	{
		Name:        "search_flights",
		Description: "Search for available flights to a destination on a specific date",
		Parameters: map[string]ParamSpec{
			"destination": {Type: "string", Description: "Airport code (e.g., 'LAX', 'NYC', 'CHI')"},
			"date":        {Type: "string", Description: "Date in YYYY-MM-DD format"},
		},
	},
	{
		Name:        "book_flight",
		Description: "Book a flight for a user",
		Parameters: map[string]ParamSpec{
			"flight_id": {Type: "integer", Description: "ID of the flight to book"},
			"user_id":   {Type: "integer", Description: "ID of the user making the booking"},
		},
	},
	{
		Name:        "cancel_booking",
		Description: "Cancel an existing booking",
		Parameters: map[string]ParamSpec{
			"booking_id": {Type: "integer", Description: "ID of the booking to cancel"},
		},
	},
	{
		Name:        "check_policy",
		Description: "Check airline policies",
		Parameters: map[string]ParamSpec{
			"policy_type": {Type: "string", Description: "Type of policy to check ('cancellation', 'change_fee', 'booking_limit')"},
		},
	},
	respondToUserSpec,
}

// airlineSchema bootstraps the airline world. Booking 1 is seeded ten days
// in the past so the cancellation-window rule has something to reject.
const airlineSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL
);

CREATE TABLE flights (
    id INTEGER PRIMARY KEY,
    destination TEXT NOT NULL,
    departure_date TEXT NOT NULL,
    available_seats INTEGER NOT NULL,
    price REAL NOT NULL
);

CREATE TABLE bookings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    flight_id INTEGER NOT NULL,
    booking_date TEXT NOT NULL,
    status TEXT NOT NULL
);

INSERT INTO users (id, name, email) VALUES
    (1, 'Alice Johnson', 'alice@example.com'),
    (2, 'Bob Smith', 'bob@example.com'),
    (3, 'Carol Davis', 'carol@example.com');

INSERT INTO flights (id, destination, departure_date, available_seats, price) VALUES
    (101, 'LAX', '2025-11-01', 1, 250.0),
    (102, 'LAX', '2025-11-02', 5, 275.0),
    (103, 'NYC', '2025-11-01', 3, 320.0),
    (104, 'CHI', '2025-11-03', 8, 180.0);

INSERT INTO bookings (id, user_id, flight_id, booking_date, status) VALUES
    (1, 2, 102, date('now', '-10 day'), 'confirmed');
`
