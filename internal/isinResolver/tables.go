package isinResolver

var countries = map[string]string{
	"US": "🇺🇸 United States",
	"FR": "🇫🇷 France",
	"ES": "🇪🇸 Spain",
	"DE": "🇩🇪 Germany",
	"GB": "🇬🇧 United Kingdom",
	"IT": "🇮🇹 Italy",
	"CH": "🇨🇭 Switzerland",
	"NL": "🇳🇱 Netherlands",
}

var isinToSymbol = map[string]string{
	// United States
	"US0378331005": "AAPL",
	"US5949181045": "MSFT",
	"US02079K3059": "GOOGL",
	"US0231351067": "AMZN",
	"US88160R1014": "TSLA",
	"US30303M1027": "META",
	"US67066G1040": "NVDA",
	"US0846707026": "BAC",
	"US46625H1005": "JPM",
	"US91324P1021": "WMT",
	"US92826C8394": "V",
	"US57636Q1040": "MA",
	"US4592001014": "INTC",
	"US0010841023": "AMD",
	"US64110L1061": "NFLX",
	"US2546871060": "DIS",
	"US1912161007": "KO",
	"US30231G1022": "XOM",
	"US1667641005": "CVX",
	"US4781601046": "JNJ",
	"US7170811035": "PFE",
	"US7427181091": "PG",

	// Euronext Paris
	"FR0000121014": "MC.PA",
	"FR0000120321": "OR.PA",
	"FR0000120578": "SAN.PA",
	"FR0000120271": "TTE.PA",
	"FR0000131104": "BNP.PA",
	"NL0000235190": "AIR.PA",
	"FR0000121972": "SU.PA",
	"FR0000045072": "ACA.PA",
	"FR0000120628": "CS.PA",
	"FR0000125338": "CAP.PA",
	"FR0000125486": "DG.PA",
	"FR0000120693": "RI.PA",
	"FR0000073272": "SAF.PA",
	"FR0014003TT8": "DSY.PA",
	"FR0000121667": "EL.PA",
	"FR0000133308": "ORA.PA",
	"FR0000120503": "EN.PA",
	"FR0000125007": "SGO.PA",
	"FR0000052292": "RMS.PA",
	"FR0000121485": "KER.PA",
	"FR0000130577": "PUB.PA",
	"NL0000226223": "STM.PA",
	"FR0000121261": "ML.PA",
	"FR0000124141": "VIE.PA",
	"FR0010307819": "DEC.PA",

	// BME Madrid
	"ES0113900J37": "SAN.MC",
	"ES0113211835": "BBVA.MC",
	"ES0178430E18": "TEF.MC",
	"ES0148396007": "ITX.MC",
	"ES0144580Y14": "IBE.MC",
	"ES0173516115": "REP.MC",

	// Xetra
	"DE0007164600": "SAP.DE",
	"DE0007236101": "SIE.DE",
	"DE0005190003": "BMW.DE",
	"DE0005140008": "DBK.DE",
	"DE0005785604": "FME.DE",

	// London
	"GB0007980591": "BP.L",
	"GB0005405286": "HSBC.L",
	"GB00BP6MXD84": "SHEL.L",
	"GB00B10RZP78": "ULVR.L",

	// Milan
	"IT0003132476": "ENI.MI",
	"NL0011585146": "RACE.MI",
	"IT0000072618": "ISP.MI",

	// SIX Swiss
	"CH0038863350": "NESN.SW",
	"CH0012032048": "ROG.SW",
	"CH0012005267": "NOVN.SW",
}
