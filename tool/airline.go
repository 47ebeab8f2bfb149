package tool

import (
	"github.com/nicksaban20/Green-Agent/core"
	"github.com/nicksaban20/Green-Agent/world"
)

func (e *Executor) searchFlights(op SearchFlightsOp) (Result, error) {
	flights, err := e.store.Query(
		"SELECT * FROM flights WHERE destination = ? AND departure_date = ?",
		op.Destination, op.Date,
	)
	if err != nil {
		return nil, err
	}
	if flights == nil {
		flights = []world.Row{}
	}
	return Result{"flights": flights}, nil
}

// bookFlight debits one seat and creates the booking row in the same
// transaction; both preconditions are checked before any write.
func (e *Executor) bookFlight(op BookFlightOp) (Result, error) {
	var result Result
	err := e.store.Transact(func(tx *world.Tx) error {
		flight, err := tx.QueryRow("SELECT * FROM flights WHERE id = ?", op.FlightID)
		if err != nil {
			return err
		}
		if flight == nil {
			return core.NewBusinessRuleError("Flight not found")
		}
		if seats, _ := flight["available_seats"].(int64); seats <= 0 {
			return core.NewBusinessRuleError("No seats available")
		}

		bookingID, err := tx.Insert(
			"INSERT INTO bookings (user_id, flight_id, booking_date, status) VALUES (?, ?, ?, ?)",
			op.UserID, op.FlightID, e.today(), "confirmed",
		)
		if err != nil {
			return err
		}
		if err := tx.Exec(
			"UPDATE flights SET available_seats = available_seats - 1 WHERE id = ?",
			op.FlightID,
		); err != nil {
			return err
		}

		result = Result{"booking_id": bookingID, "status": "confirmed"}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// cancelBooking releases the seat and flips the booking status in one
// transaction. Only bookings at most one whole day old may be cancelled.
func (e *Executor) cancelBooking(op CancelBookingOp) (Result, error) {
	err := e.store.Transact(func(tx *world.Tx) error {
		booking, err := tx.QueryRow("SELECT * FROM bookings WHERE id = ?", op.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return core.NewBusinessRuleError("Booking not found")
		}

		bookingDate, _ := booking["booking_date"].(string)
		days, err := e.daysSince(bookingDate)
		if err != nil {
			return err
		}
		if days > 1 {
			return core.NewBusinessRuleError("Cancellation not allowed after 24 hours")
		}

		if err := tx.Exec(
			"UPDATE bookings SET status = 'cancelled' WHERE id = ?",
			op.BookingID,
		); err != nil {
			return err
		}
		return tx.Exec(
			"UPDATE flights SET available_seats = available_seats + 1 WHERE id = ?",
			booking["flight_id"],
		)
	})
	if err != nil {
		return nil, err
	}
	return Result{"status": "cancelled"}, nil
}

func (e *Executor) checkPolicy(op CheckPolicyOp) (Result, error) {
	switch op.PolicyType {
	case "cancellation":
		return Result{"policy": "Cancellations within 24 hours get full refund"}, nil
	case "return_window":
		return Result{"policy": "Returns accepted within 30 days"}, nil
	case "loyalty_discount":
		return Result{"policy": "10% discount for 100+ loyalty points"}, nil
	default:
		return nil, core.NewBusinessRuleError("Unknown policy type")
	}
}
