package finnhubApi

// staticProfiles covers Paris listings the free profile endpoint does not serve.
var staticProfiles = map[string]profileResponse{
	"MC.PA":   {Name: "LVMH", Currency: "EUR"},
	"OR.PA":   {Name: "L'Oréal", Currency: "EUR"},
	"TTE.PA":  {Name: "TotalEnergies", Currency: "EUR"},
	"SAN.PA":  {Name: "Sanofi", Currency: "EUR"},
	"AIR.PA":  {Name: "Airbus", Currency: "EUR"},
	"BNP.PA":  {Name: "BNP Paribas", Currency: "EUR"},
	"SU.PA":   {Name: "Schneider Electric", Currency: "EUR"},
	"AI.PA":   {Name: "Air Liquide", Currency: "EUR"},
	"DG.PA":   {Name: "Vinci", Currency: "EUR"},
	"KER.PA":  {Name: "Kering", Currency: "EUR"},
	"RMS.PA":  {Name: "Hermès", Currency: "EUR"},
	"CS.PA":   {Name: "AXA", Currency: "EUR"},
	"BN.PA":   {Name: "Danone", Currency: "EUR"},
	"EL.PA":   {Name: "EssilorLuxottica", Currency: "EUR"},
	"CAP.PA":  {Name: "Capgemini", Currency: "EUR"},
	"ORA.PA":  {Name: "Orange", Currency: "EUR"},
	"VIV.PA":  {Name: "Vivendi", Currency: "EUR"},
	"ENGI.PA": {Name: "Engie", Currency: "EUR"},
	"GLE.PA":  {Name: "Société Générale", Currency: "EUR"},
	"RI.PA":   {Name: "Pernod Ricard", Currency: "EUR"},
	"SGO.PA":  {Name: "Saint-Gobain", Currency: "EUR"},
	"ACA.PA":  {Name: "Crédit Agricole", Currency: "EUR"},
	"ML.PA":   {Name: "Michelin", Currency: "EUR"},
	"STLA.PA": {Name: "Stellantis", Currency: "EUR"},
}
