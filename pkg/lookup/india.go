package lookup

// indiaStates lists GST state codes as assigned by the GST council. Code 25
// (Daman and Diu) stopped being issued after the 2020 merger into code 26 but
// remains in the table for recognizing legacy registrations. Codes 97 and 99
// are not physical states and carry the special-jurisdiction class.
var indiaStates = NewTable([]Entry{
	{Code: "01", Name: "Jammu and Kashmir", Active: true},
	{Code: "02", Name: "Himachal Pradesh", Active: true},
	{Code: "03", Name: "Punjab", Active: true},
	{Code: "04", Name: "Chandigarh", Active: true, UnionTerritory: true},
	{Code: "05", Name: "Uttarakhand", Active: true},
	{Code: "06", Name: "Haryana", Active: true},
	{Code: "07", Name: "Delhi", Active: true},
	{Code: "08", Name: "Rajasthan", Active: true},
	{Code: "09", Name: "Uttar Pradesh", Active: true},
	{Code: "10", Name: "Bihar", Active: true},
	{Code: "11", Name: "Sikkim", Active: true},
	{Code: "12", Name: "Arunachal Pradesh", Active: true},
	{Code: "13", Name: "Nagaland", Active: true},
	{Code: "14", Name: "Manipur", Active: true},
	{Code: "15", Name: "Mizoram", Active: true},
	{Code: "16", Name: "Tripura", Active: true},
	{Code: "17", Name: "Meghalaya", Active: true},
	{Code: "18", Name: "Assam", Active: true},
	{Code: "19", Name: "West Bengal", Active: true},
	{Code: "20", Name: "Jharkhand", Active: true},
	{Code: "21", Name: "Odisha", Active: true},
	{Code: "22", Name: "Chhattisgarh", Active: true},
	{Code: "23", Name: "Madhya Pradesh", Active: true},
	{Code: "24", Name: "Gujarat", Active: true},
	{Code: "25", Name: "Daman and Diu", Active: false, UnionTerritory: true},
	{Code: "26", Name: "Dadra and Nagar Haveli and Daman and Diu", Active: true, UnionTerritory: true},
	{Code: "27", Name: "Maharashtra", Active: true},
	{Code: "28", Name: "Andhra Pradesh (pre-division)", Active: true},
	{Code: "29", Name: "Karnataka", Active: true},
	{Code: "30", Name: "Goa", Active: true},
	{Code: "31", Name: "Lakshadweep", Active: true, UnionTerritory: true},
	{Code: "32", Name: "Kerala", Active: true},
	{Code: "33", Name: "Tamil Nadu", Active: true},
	{Code: "34", Name: "Puducherry", Active: true},
	{Code: "35", Name: "Andaman and Nicobar Islands", Active: true, UnionTerritory: true},
	{Code: "36", Name: "Telangana", Active: true},
	{Code: "37", Name: "Andhra Pradesh", Active: true},
	{Code: "38", Name: "Ladakh", Active: true, UnionTerritory: true},
	{Code: "97", Name: "Other Territory", Active: true, Class: ClassSpecialJurisdiction},
	{Code: "99", Name: "Centre Jurisdiction", Active: true, Class: ClassSpecialJurisdiction},
})

// IndiaStates returns the GST state and jurisdiction code table.
func IndiaStates() *Table {
	return indiaStates
}
