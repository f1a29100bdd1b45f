package frame

// timezoneEntry pairs a 6-bit SMPTE timezone code with its ASCII offset
// string, per http://www.barney-wol.net/time/timecode.html.
type timezoneEntry struct {
	code byte
	zone string
}

// timezoneTable is the static compile-time mapping from code to zone
// string, sorted by code, searched linearly (the table is small and
// consulted at most once per frame conversion).
var timezoneTable = []timezoneEntry{
	{0x00, "+0000"},
	{0x01, "-0100"},
	{0x02, "-0200"},
	{0x03, "-0300"},
	{0x04, "-0400"},
	{0x05, "-0500"},
	{0x06, "-0600"},
	{0x07, "-0700"},
	{0x08, "-0800"},
	{0x09, "-0900"},
	{0x0A, "+0030"},
	{0x0B, "-0130"},
	{0x0C, "-0230"},
	{0x0D, "-0330"},
	{0x0E, "-0430"},
	{0x0F, "-0530"},
	{0x10, "-1000"},
	{0x11, "-1100"},
	{0x12, "-1200"},
	{0x13, "+1300"},
	{0x14, "+1200"},
	{0x15, "+1100"},
	{0x16, "+1000"},
	{0x17, "+0900"},
	{0x18, "+0800"},
	{0x19, "+0700"},
	{0x1A, "-0630"},
	{0x1B, "-0730"},
	{0x1C, "-0830"},
	{0x1D, "-0930"},
	{0x1E, "-1030"},
	{0x1F, "-1130"},
	{0x20, "+0600"},
	{0x21, "+0500"},
	{0x22, "+0400"},
	{0x23, "+0300"},
	{0x24, "+0200"},
	{0x25, "+0100"},
	{0x28, "TP-03"},
	{0x29, "TP-02"},
	{0x2A, "+1130"},
	{0x2B, "+1030"},
	{0x2C, "+0930"},
	{0x2D, "+0830"},
	{0x2E, "+0730"},
	{0x2F, "+0630"},
	{0x30, "TP-01"},
	{0x31, "TP-00"},
	{0x32, "+1245"},
	{0x38, "+XXXX"},
	{0x3A, "+0530"},
	{0x3B, "+0430"},
	{0x3C, "+0330"},
	{0x3D, "+0230"},
	{0x3E, "+0130"},
	{0x3F, "+0030"},
}

func timezoneString(code byte) string {
	for _, e := range timezoneTable {
		if e.code == code {
			return e.zone
		}
	}
	return "+0000"
}

func timezoneCodeForString(zone string) byte {
	for _, e := range timezoneTable {
		if e.zone == zone {
			return e.code
		}
	}
	return 0x00
}
