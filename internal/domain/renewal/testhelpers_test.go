package renewal

import "time"

var ict = time.FixedZone("ICT", 7*60*60)

func testPolicy() Policy {
	p := DefaultPolicy()
	p.Location = ict
	return p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, ict)
}
