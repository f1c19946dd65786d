package searchResolver

import "github.com/KotFed0t/portfolio_dashboard/internal/model"

// catalog is merged into every free-text search and wins symbol conflicts.
var catalog = []model.SearchResult{
	// US tech
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "GOOGL", Name: "Alphabet Inc."},
	{Symbol: "GOOG", Name: "Alphabet Inc. Class C"},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "META", Name: "Meta Platforms Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "AMD", Name: "Advanced Micro Devices"},
	{Symbol: "INTC", Name: "Intel Corporation"},
	{Symbol: "NFLX", Name: "Netflix Inc."},
	{Symbol: "CRM", Name: "Salesforce Inc."},
	{Symbol: "ORCL", Name: "Oracle Corporation"},
	{Symbol: "ADBE", Name: "Adobe Inc."},

	// US finance
	{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
	{Symbol: "BAC", Name: "Bank of America Corp"},
	{Symbol: "WFC", Name: "Wells Fargo & Company"},
	{Symbol: "GS", Name: "Goldman Sachs Group"},
	{Symbol: "MS", Name: "Morgan Stanley"},
	{Symbol: "V", Name: "Visa Inc."},
	{Symbol: "MA", Name: "Mastercard Inc."},
	{Symbol: "AXP", Name: "American Express"},

	// US consumer
	{Symbol: "WMT", Name: "Walmart Inc."},
	{Symbol: "HD", Name: "Home Depot Inc."},
	{Symbol: "NKE", Name: "Nike Inc."},
	{Symbol: "MCD", Name: "McDonald's Corporation"},
	{Symbol: "SBUX", Name: "Starbucks Corporation"},
	{Symbol: "DIS", Name: "Walt Disney Company"},
	{Symbol: "KO", Name: "Coca-Cola Company"},
	{Symbol: "PEP", Name: "PepsiCo Inc."},

	// Euronext Paris
	{Symbol: "MC.PA", Name: "LVMH Moët Hennessy Louis Vuitton"},
	{Symbol: "OR.PA", Name: "L'Oréal"},
	{Symbol: "SAN.PA", Name: "Sanofi"},
	{Symbol: "TTE.PA", Name: "TotalEnergies"},
	{Symbol: "BNP.PA", Name: "BNP Paribas"},
	{Symbol: "AIR.PA", Name: "Airbus"},
	{Symbol: "SU.PA", Name: "Schneider Electric"},
	{Symbol: "ACA.PA", Name: "Crédit Agricole"},
	{Symbol: "CS.PA", Name: "AXA"},
	{Symbol: "CAP.PA", Name: "Capgemini"},
	{Symbol: "DG.PA", Name: "Vinci"},
	{Symbol: "RI.PA", Name: "Pernod Ricard"},
	{Symbol: "SAF.PA", Name: "Safran"},
	{Symbol: "DSY.PA", Name: "Dassault Systèmes"},
	{Symbol: "EL.PA", Name: "EssilorLuxottica"},
	{Symbol: "ORA.PA", Name: "Orange"},
	{Symbol: "EN.PA", Name: "Bouygues"},
	{Symbol: "SGO.PA", Name: "Saint-Gobain"},
	{Symbol: "RMS.PA", Name: "Hermès International"},
	{Symbol: "KER.PA", Name: "Kering"},
	{Symbol: "PUB.PA", Name: "Publicis Groupe"},
	{Symbol: "STM.PA", Name: "STMicroelectronics"},
	{Symbol: "ML.PA", Name: "Michelin"},
	{Symbol: "VIE.PA", Name: "Veolia Environnement"},
	{Symbol: "DEC.PA", Name: "Legrand"},
}
