package lookup

// spainCIFTypes lists the documented CIF entity-type letters with their legal
// meanings. The letter also determines whether the control character renders
// as a digit or a letter; that classification lives with the Spanish checksum
// engine, not here.
var spainCIFTypes = NewTable([]Entry{
	{Code: "A", Name: "Sociedad anónima", Active: true},
	{Code: "B", Name: "Sociedad de responsabilidad limitada", Active: true},
	{Code: "C", Name: "Sociedad colectiva", Active: true},
	{Code: "D", Name: "Sociedad comanditaria", Active: true},
	{Code: "E", Name: "Comunidad de bienes", Active: true},
	{Code: "F", Name: "Sociedad cooperativa", Active: true},
	{Code: "G", Name: "Asociación", Active: true},
	{Code: "H", Name: "Comunidad de propietarios", Active: true},
	{Code: "J", Name: "Sociedad civil", Active: true},
	{Code: "N", Name: "Entidad extranjera", Active: true},
	{Code: "P", Name: "Corporación local", Active: true},
	{Code: "Q", Name: "Organismo público", Active: true},
	{Code: "R", Name: "Congregación o institución religiosa", Active: true},
	{Code: "S", Name: "Órgano de la Administración del Estado", Active: true},
	{Code: "U", Name: "Unión temporal de empresas", Active: true},
	{Code: "V", Name: "Otros tipos no definidos", Active: true},
	{Code: "W", Name: "Establecimiento permanente de entidad no residente", Active: true},
})

// SpainCIFTypes returns the CIF entity-type letter table.
func SpainCIFTypes() *Table {
	return spainCIFTypes
}
