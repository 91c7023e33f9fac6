package rules

import (
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// Defaults returns the stock rule set for the default taxonomy.
func Defaults() *Store {
	s := NewStore(schedule.Default())
	for _, r := range defaultOverrides() {
		mustAdd(s.Add(r))
	}
	for _, r := range defaultKeywords() {
		mustAdd(s.Add(r))
	}
	for _, r := range defaultGroups() {
		mustAdd(s.Add(r))
	}
	for _, v := range DefaultValidations() {
		mustAdd(s.AddValidation(v))
	}
	return s
}

func mustAdd(err error) {
	if err != nil {
		panic("rules: invalid stock rule: " + err.Error())
	}
}

func group(id, name, parent, code string) model.GroupRule {
	return model.GroupRule{ID: id, GroupName: name, ParentGroup: parent, TargetCode: code, Active: true}
}

func keyword(id, pattern string, mt model.MatchType, code string, priority int) model.KeywordRule {
	return model.KeywordRule{ID: id, Pattern: pattern, MatchType: mt, TargetCode: code, Priority: priority, Active: true}
}

// Parent groups are only set where a Tally group name is ambiguous on its own.
func defaultGroups() []model.GroupRule {
	return []model.GroupRule{
		group("GM001", "Capital Account", "", "EL-SHF-SC-EQ"),
		group("GM002", "Share Capital", "Capital Account", "EL-SHF-SC-EQ"),
		group("GM003", "Reserves & Surplus", "", "EL-SHF-RS-PL"),
		group("GM004", "Retained Earnings", "Reserves & Surplus", "EL-SHF-RS-PL"),
		group("GM005", "Secured Loans", "", "EL-NCL-LTB-TL"),
		group("GM006", "Unsecured Loans", "", "EL-NCL-LTB"),
		group("GM007", "Bank OD A/c", "Loans (Liability)", "EL-CL-STB-BOD"),
		group("GM008", "Bank OCC A/c", "", "EL-CL-STB-CC"),
		group("GM009", "Sundry Creditors", "", "EL-CL-TP-OTH"),
		group("GM010", "Duties & Taxes", "", "EL-CL-OCL-SD"),
		group("GM011", "Provisions", "", "EL-CL-STP"),
		group("GM012", "Fixed Assets", "", "AS-NCA-PPE"),
		group("GM013", "Land", "Fixed Assets", "AS-NCA-PPE-LAND"),
		group("GM014", "Buildings", "Fixed Assets", "AS-NCA-PPE-BLDG"),
		group("GM015", "Plant & Machinery", "Fixed Assets", "AS-NCA-PPE-PM"),
		group("GM016", "Furniture & Fixtures", "Fixed Assets", "AS-NCA-PPE-FF"),
		group("GM017", "Vehicles", "Fixed Assets", "AS-NCA-PPE-VEH"),
		group("GM018", "Office Equipment", "Fixed Assets", "AS-NCA-PPE-OE"),
		group("GM019", "Computer Equipment", "Fixed Assets", "AS-NCA-PPE-COMP"),
		group("GM020", "Computers", "Fixed Assets", "AS-NCA-PPE-COMP"),
		group("GM021", "Investments", "", "AS-NCA-NCI"),
		group("GM022", "Stock-in-Hand", "", "AS-CA-INV"),
		group("GM023", "Raw Materials", "Stock-in-Hand", "AS-CA-INV-RM"),
		group("GM024", "Work-in-Progress", "Stock-in-Hand", "AS-CA-INV-WIP"),
		group("GM025", "Finished Goods", "Stock-in-Hand", "AS-CA-INV-FG"),
		group("GM026", "Stores & Spares", "Stock-in-Hand", "AS-CA-INV"),
		group("GM027", "Sundry Debtors", "", "AS-CA-TR-UNS"),
		group("GM028", "Cash-in-Hand", "", "AS-CA-CASH-COH"),
		group("GM029", "Bank Accounts", "", "AS-CA-CASH-BB"),
		group("GM030", "Bank OD A/c", "Current Assets", "AS-CA-CASH-BB"),
		group("GM031", "Loans & Advances (Asset)", "", "AS-CA-STLA"),
		group("GM032", "Deposits (Asset)", "", "AS-NCA-LTLA-SD"),
		group("GM033", "Sales Accounts", "", "INC-REV-SALE"),
		group("GM034", "Direct Incomes", "", "INC-REV-OOR"),
		group("GM035", "Indirect Incomes", "", "INC-OI-OTH"),
		group("GM036", "Purchase Accounts", "", "EXP-MAT-CMC"),
		group("GM037", "Direct Expenses", "", "EXP-OE-MISC"),
		group("GM038", "Indirect Expenses", "", "EXP-OE-MISC"),
		group("GM039", "Salary", "Indirect Expenses", "EXP-EBE-SAL"),
		group("GM040", "Rent", "Indirect Expenses", "EXP-OE-RENT"),
		group("GM041", "Depreciation", "Indirect Expenses", "EXP-DA-DEP"),
		group("GM042", "Interest Paid", "Indirect Expenses", "EXP-FC-INT"),
	}
}

func defaultKeywords() []model.KeywordRule {
	c, sw := model.MatchContains, model.MatchStartsWith
	return []model.KeywordRule{
		keyword("KW001", "MSME", c, "EL-CL-TP-MSME", 95),
		keyword("KW002", "Micro", c, "EL-CL-TP-MSME", 90),
		keyword("KW003", "Small Enterprise", c, "EL-CL-TP-MSME", 90),
		keyword("KW004", "Director", c, "EL-NCL-LTB-LRP", 85),
		keyword("KW005", "Promoter", c, "EL-NCL-LTB-LRP", 85),
		keyword("KW006", "Subsidiary", c, "AS-NCA-NCI", 85),
		keyword("KW007", "Associate", c, "AS-NCA-NCI", 85),
		keyword("KW008", "Holding Company", c, "EL-NCL-LTB-LRP", 85),
		keyword("KW009", "Securities Premium", c, "EL-SHF-RS-SP", 75),
		keyword("KW010", "Capital Reserve", c, "EL-SHF-RS-CR", 75),
		keyword("KW011", "General Reserve", c, "EL-SHF-RS-GR", 75),
		keyword("KW012", "Revaluation Reserve", c, "EL-SHF-RS", 75),
		keyword("KW013", "Profit & Loss", c, "EL-SHF-RS-PL", 70),
		keyword("KW014", "P&L", c, "EL-SHF-RS-PL", 70),
		keyword("KW015", "GST", c, "EL-CL-OCL-SD", 70),
		keyword("KW016", "TDS", c, "EL-CL-OCL-SD", 70),
		keyword("KW017", "TCS", c, "EL-CL-OCL-SD", 70),
		keyword("KW018", "PF Payable", c, "EL-CL-OCL-SD", 70),
		keyword("KW019", "ESI Payable", c, "EL-CL-OCL-SD", 70),
		keyword("KW020", "PT Payable", c, "EL-CL-OCL-SD", 70),
		keyword("KW021", "Provision for Gratuity", c, "EL-NCL-LTP-EB", 70),
		keyword("KW022", "Provision for Leave", c, "EL-CL-STP-EB", 70),
		keyword("KW023", "Provision for Tax", c, "EL-CL-STP-TAX", 70),
		keyword("KW024", "Provision for Bad Debts", c, "AS-CA-TR", 70),
		keyword("KW025", "Fixed Deposit", c, "AS-CA-CASH-FD", 65),
		keyword("KW026", "FD", sw, "AS-CA-CASH-FD", 60),
		keyword("KW027", "Current Account", c, "AS-CA-CASH-BB", 60),
		keyword("KW028", "Savings Account", c, "AS-CA-CASH-BB", 60),
		keyword("KW029", "Salary", c, "EXP-EBE-SAL", 65),
		keyword("KW030", "Wages", c, "EXP-EBE-SAL", 65),
		keyword("KW031", "Bonus", c, "EXP-EBE-SAL-BON", 65),
		keyword("KW032", "Staff Welfare", c, "EXP-EBE-WEL", 65),
		keyword("KW033", "Audit Fee", c, "EXP-OE-AUD", 60),
		keyword("KW034", "Legal Fee", c, "EXP-OE-PRO", 60),
		keyword("KW035", "Professional Fee", c, "EXP-OE-PRO", 60),
		keyword("KW036", "Consulting", c, "EXP-OE-PRO", 55),
		keyword("KW037", "Travelling", c, "EXP-OE-TRV", 55),
		keyword("KW038", "Conveyance", c, "EXP-OE-TRV", 55),
		keyword("KW039", "Telephone", c, "EXP-OE-COM", 55),
		keyword("KW040", "Insurance", c, "EXP-OE-INS", 55),
		keyword("KW041", "Bank Charges", c, "EXP-FC-OBC-BC", 55),
	}
}

func defaultOverrides() []model.OverrideRule {
	return []model.OverrideRule{
		{
			ID:           "OV001",
			LedgerName:   "Building - Leasehold",
			CurrentGroup: "Fixed Assets",
			TargetCode:   "AS-NCA-PPE-BLDG",
			Reason:       "Leasehold building shown under buildings",
			Active:       true,
		},
		{
			ID:           "OV002",
			LedgerName:   "Goodwill (Acquired)",
			CurrentGroup: "Fixed Assets",
			TargetCode:   "AS-NCA-IA-GW",
			Reason:       "Acquired goodwill is an intangible asset",
			Active:       true,
		},
	}
}

// DefaultValidations returns the stock validation rules.
func DefaultValidations() []model.ValidationRule {
	v := func(id, typ string, sev model.Severity, cond, action, msg string) model.ValidationRule {
		return model.ValidationRule{ID: id, Type: typ, Severity: sev, Condition: cond, Action: action, MessageTemplate: msg, Active: true}
	}
	const review, info = "Flag for review", "Request information"
	return []model.ValidationRule{
		v("VL001", model.CheckUnmapped, model.SeverityCritical, "Ledger not mapped to any code", review,
			`Ledger "{ledger_name}" is not mapped to any Schedule III line item`),
		v("VL002", model.CheckLiabilityDebitBalance, model.SeverityHigh, "Debit balance in a liability", review,
			`Liability account "{ledger_name}" has a debit balance of {amount}`),
		v("VL003", model.CheckAssetCreditBalance, model.SeverityHigh, "Credit balance in an asset", review,
			`Asset account "{ledger_name}" has a credit balance of {amount}`),
		v("VL004", model.CheckZeroBalance, model.SeverityLow, "Zero closing balance", review,
			`Ledger "{ledger_name}" has zero balance - confirm if correct`),
		v("VL005", model.CheckMaturityClassification, model.SeverityMedium, "Needs current/non-current split", info,
			`Ledger "{ledger_name}" requires current/non-current classification`),
		v("VL006", model.CheckRelatedParty, model.SeverityHigh, "Possible related party", info,
			`Ledger "{ledger_name}" may involve related party - verify disclosure`),
		v("VL007", model.CheckMSMEClassification, model.SeverityHigh, "Trade payable may be MSME", info,
			`Trade payable "{ledger_name}" - verify if MSME creditor`),
		v("VL008", model.CheckStatutoryDues, model.SeverityMedium, "Statutory dues", info,
			`Statutory due "{ledger_name}" - verify payment status`),
		v("VL009", model.CheckLargeBalance, model.SeverityMedium, "Balance above materiality without an override", review,
			`Ledger "{ledger_name}" has unusually large balance of {amount}`),
		v("VL010", model.CheckSignPolarity, model.SeverityHigh, "Income or expense with unexpected sign", review,
			`Ledger "{ledger_name}" has unexpected negative balance`),
		v("VL011", model.CheckDormantAccount, model.SeverityLow, "No movement during the period", review,
			`Ledger "{ledger_name}" shows no movement - verify if dormant`),
		v("VL012", model.CheckRevenueFlagMismatch, model.SeverityMedium, "Revenue ledger classified outside income", review,
			`Revenue ledger "{ledger_name}" is classified outside income`),
	}
}
