package schedule

func header(code, desc string) Entry {
	return Entry{Code: mustParse(code), Description: desc, Statements: statementsOf(code)}
}

func note(code, desc string) Entry {
	return Entry{Code: mustParse(code), Description: desc, Statements: statementsOf(code), Note: true}
}

func item(code, desc string) Entry {
	return Entry{Code: mustParse(code), Description: desc, Statements: statementsOf(code)}
}

func uncategorised(code, desc string) Entry {
	return Entry{Code: mustParse(code), Description: desc, Statements: statementsOf(code), Uncategorised: true}
}

func mustParse(s string) Code {
	c, err := parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// statementsOf derives the statement from the area segment.
func statementsOf(code string) Statements {
	switch mustParse(code).Area {
	case "EL", "AS":
		return BalanceSheet
	case "INC", "EXP":
		return ProfitLoss
	}
	return 0
}

func defaultEntries() []Entry {
	return []Entry{
		// Balance Sheet: equity and liabilities.
		header("EL", "Equity and liabilities"),
		header("EL-SHF", "Shareholders' funds"),
		note("EL-SHF-SC", "Share capital"),
		item("EL-SHF-SC-EQ", "Equity share capital"),
		item("EL-SHF-SC-PR", "Preference share capital"),
		note("EL-SHF-RS", "Reserves and surplus"),
		item("EL-SHF-RS-CR", "Capital reserve"),
		item("EL-SHF-RS-SP", "Securities premium"),
		item("EL-SHF-RS-GR", "General reserve"),
		item("EL-SHF-RS-PL", "Surplus in the statement of profit and loss"),
		note("EL-SHF-MW", "Money received against share warrants"),
		uncategorised("EL-SHF-UNC", "Uncategorised shareholders' funds"),

		header("EL-SAM", "Share application money pending allotment"),
		note("EL-SAM-PA", "Share application money pending allotment"),

		header("EL-NCL", "Non-current liabilities"),
		note("EL-NCL-LTB", "Long-term borrowings"),
		item("EL-NCL-LTB-TL", "Term loans from banks"),
		item("EL-NCL-LTB-DEB", "Debentures"),
		item("EL-NCL-LTB-LRP", "Loans from related parties"),
		note("EL-NCL-DTL", "Deferred tax liabilities (net)"),
		note("EL-NCL-OLL", "Other long-term liabilities"),
		note("EL-NCL-LTP", "Long-term provisions"),
		item("EL-NCL-LTP-EB", "Provision for employee benefits"),
		uncategorised("EL-NCL-UNC", "Uncategorised non-current liabilities"),

		header("EL-CL", "Current liabilities"),
		note("EL-CL-STB", "Short-term borrowings"),
		item("EL-CL-STB-BOD", "Bank overdraft"),
		item("EL-CL-STB-CC", "Cash credit"),
		item("EL-CL-STB-CMLTB", "Current maturities of long-term borrowings"),
		item("EL-CL-STB-LRP", "Loans from related parties"),
		note("EL-CL-TP", "Trade payables"),
		item("EL-CL-TP-MSME", "Dues to micro and small enterprises"),
		item("EL-CL-TP-OTH", "Dues to other creditors"),
		note("EL-CL-OCL", "Other current liabilities"),
		item("EL-CL-OCL-SD", "Statutory dues"),
		item("EL-CL-OCL-AC", "Advances from customers"),
		item("EL-CL-OCL-EXP", "Expenses payable"),
		note("EL-CL-STP", "Short-term provisions"),
		item("EL-CL-STP-EB", "Provision for employee benefits"),
		item("EL-CL-STP-TAX", "Provision for income tax"),
		uncategorised("EL-CL-UNC", "Uncategorised current liabilities"),

		// Balance Sheet: assets.
		header("AS", "Assets"),
		header("AS-NCA", "Non-current assets"),
		note("AS-NCA-PPE", "Property, plant and equipment"),
		item("AS-NCA-PPE-LAND", "Land"),
		item("AS-NCA-PPE-BLDG", "Buildings"),
		item("AS-NCA-PPE-PM", "Plant and machinery"),
		item("AS-NCA-PPE-FF", "Furniture and fixtures"),
		item("AS-NCA-PPE-VEH", "Vehicles"),
		item("AS-NCA-PPE-OE", "Office equipment"),
		item("AS-NCA-PPE-COMP", "Computers"),
		item("AS-NCA-PPE-AD", "Accumulated depreciation"),
		note("AS-NCA-IA", "Intangible assets"),
		item("AS-NCA-IA-SW", "Computer software"),
		item("AS-NCA-IA-GW", "Goodwill"),
		note("AS-NCA-CWIP", "Capital work-in-progress"),
		note("AS-NCA-NCI", "Non-current investments"),
		note("AS-NCA-DTA", "Deferred tax assets (net)"),
		note("AS-NCA-LTLA", "Long-term loans and advances"),
		item("AS-NCA-LTLA-SD", "Security deposits"),
		item("AS-NCA-LTLA-CA", "Capital advances"),
		note("AS-NCA-ONCA", "Other non-current assets"),
		uncategorised("AS-NCA-UNC", "Uncategorised non-current assets"),

		header("AS-CA", "Current assets"),
		note("AS-CA-CI", "Current investments"),
		note("AS-CA-INV", "Inventories"),
		item("AS-CA-INV-RM", "Raw materials"),
		item("AS-CA-INV-WIP", "Work-in-progress"),
		item("AS-CA-INV-FG", "Finished goods"),
		item("AS-CA-INV-ST", "Stock-in-trade"),
		note("AS-CA-TR", "Trade receivables"),
		item("AS-CA-TR-SEC", "Secured, considered good"),
		item("AS-CA-TR-UNS", "Unsecured, considered good"),
		note("AS-CA-CASH", "Cash and cash equivalents"),
		item("AS-CA-CASH-COH", "Cash on hand"),
		item("AS-CA-CASH-BB", "Balances with banks"),
		item("AS-CA-CASH-FD", "Fixed deposits"),
		note("AS-CA-STLA", "Short-term loans and advances"),
		item("AS-CA-STLA-EMP", "Loans and advances to employees"),
		item("AS-CA-STLA-PRE", "Prepaid expenses"),
		item("AS-CA-STLA-TAX", "Balances with revenue authorities"),
		note("AS-CA-OCA", "Other current assets"),
		uncategorised("AS-CA-UNC", "Uncategorised current assets"),

		// Profit and Loss: income.
		header("INC", "Income"),
		header("INC-REV", "Revenue from operations"),
		note("INC-REV-SALE", "Sale of products"),
		item("INC-REV-SALE-DOM", "Domestic sales"),
		item("INC-REV-SALE-EXP", "Export sales"),
		note("INC-REV-SERV", "Sale of services"),
		note("INC-REV-OOR", "Other operating revenue"),
		uncategorised("INC-REV-UNC", "Uncategorised revenue from operations"),

		header("INC-OI", "Other income"),
		note("INC-OI-INT", "Interest income"),
		note("INC-OI-DIV", "Dividend income"),
		note("INC-OI-OTH", "Other non-operating income"),
		item("INC-OI-OTH-RENT", "Rental income"),
		item("INC-OI-OTH-FX", "Foreign exchange gain"),
		item("INC-OI-OTH-PSA", "Profit on sale of assets"),
		uncategorised("INC-OI-UNC", "Uncategorised other income"),

		// Profit and Loss: expenses.
		header("EXP", "Expenses"),
		header("EXP-MAT", "Cost of materials and goods"),
		note("EXP-MAT-CMC", "Cost of materials consumed"),
		note("EXP-MAT-PST", "Purchases of stock-in-trade"),
		note("EXP-MAT-CII", "Changes in inventories"),
		uncategorised("EXP-MAT-UNC", "Uncategorised cost of materials"),

		header("EXP-EBE", "Employee benefits expense"),
		note("EXP-EBE-SAL", "Salaries and wages"),
		item("EXP-EBE-SAL-DIR", "Directors' remuneration"),
		item("EXP-EBE-SAL-BON", "Bonus"),
		note("EXP-EBE-CON", "Contribution to provident and other funds"),
		note("EXP-EBE-WEL", "Staff welfare expenses"),
		uncategorised("EXP-EBE-UNC", "Uncategorised employee benefits expense"),

		header("EXP-FC", "Finance costs"),
		note("EXP-FC-INT", "Interest expense"),
		note("EXP-FC-OBC", "Other borrowing costs"),
		item("EXP-FC-OBC-BC", "Bank charges"),
		uncategorised("EXP-FC-UNC", "Uncategorised finance costs"),

		header("EXP-DA", "Depreciation and amortisation"),
		note("EXP-DA-DEP", "Depreciation and amortisation expense"),

		header("EXP-OE", "Other expenses"),
		note("EXP-OE-PWR", "Power and fuel"),
		note("EXP-OE-RENT", "Rent"),
		note("EXP-OE-REP", "Repairs and maintenance"),
		note("EXP-OE-INS", "Insurance"),
		note("EXP-OE-RAT", "Rates and taxes"),
		note("EXP-OE-PRO", "Legal and professional fees"),
		note("EXP-OE-TRV", "Travelling and conveyance"),
		note("EXP-OE-COM", "Communication expenses"),
		note("EXP-OE-ADV", "Advertisement and sales promotion"),
		note("EXP-OE-AUD", "Payment to auditors"),
		note("EXP-OE-CSR", "Corporate social responsibility"),
		note("EXP-OE-MISC", "Miscellaneous expenses"),
		uncategorised("EXP-OE-UNC", "Uncategorised other expenses"),

		header("EXP-EXC", "Exceptional and prior period items"),
		note("EXP-EXC-EXC", "Exceptional items"),
		note("EXP-EXC-PPI", "Prior period items"),

		header("EXP-TAX", "Tax expense"),
		note("EXP-TAX-CUR", "Current tax"),
		note("EXP-TAX-DEF", "Deferred tax"),
		note("EXP-TAX-EPY", "Tax relating to earlier years"),
	}
}
