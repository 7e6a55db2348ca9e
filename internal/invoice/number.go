package invoice

import (
	"fmt"
	"time"
)

// datePrefixLayout is the DDMMYYYY prefix of every invoice number.
const datePrefixLayout = "02012006"

// NextNumber builds the identifier for the next invoice of the given
// day: the day's DDMMYYYY prefix followed by the daily sequence,
// zero-padded to four digits. countSoFar is the number of invoices
// already created that day, so the first invoice of a day is -0001.
//
// Pure function of its inputs; the caller supplies the daily count from
// the store. Past 9999 invoices in one day the suffix grows to five
// digits rather than failing.
func NextNumber(today time.Time, countSoFar int) string {
	return fmt.Sprintf("%s-%04d", today.Format(datePrefixLayout), countSoFar+1)
}
