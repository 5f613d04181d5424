package finance

// ProfitAndLossFields are the raw ledger figures of the Profit and Loss account.
type ProfitAndLossFields struct {
	SalesRevenue       Amount `json:"salesRevenue"`
	BeginningInventory Amount `json:"beginningInventory"`
	PurchasedInventory Amount `json:"purchasedInventory"`
	EndingInventory    Amount `json:"endingInventory"`
	Payroll            Amount `json:"payroll"`
	Utilities          Amount `json:"utilities"`
	Rent               Amount `json:"rent"`
	Advertising        Amount `json:"advertising"`
	Depreciation       Amount `json:"depreciation"`
	InterestExpenses   Amount `json:"interestExpenses"`
}

func (f *ProfitAndLossFields) bindings() []binding {
	return []binding{
		{SalesRevenue, &f.SalesRevenue},
		{BeginningInventory, &f.BeginningInventory},
		{PurchasedInventory, &f.PurchasedInventory},
		{EndingInventory, &f.EndingInventory},
		{Payroll, &f.Payroll},
		{Utilities, &f.Utilities},
		{Rent, &f.Rent},
		{Advertising, &f.Advertising},
		{Depreciation, &f.Depreciation},
		{InterestExpenses, &f.InterestExpenses},
	}
}

// ProfitAndLoss is the Profit and Loss account derived from its fields.
type ProfitAndLoss struct {
	ProfitAndLossFields
	CostOfGoodsSold        Amount `json:"costOfGoodsSold"`
	GrossProfit            Amount `json:"grossProfit"`
	TotalOperatingExpenses Amount `json:"totalOperatingExpenses"`
	OperatingIncome        Amount `json:"operatingIncome"`
	NetIncome              Amount `json:"netIncome"`
}

// NewProfitAndLoss computes the Profit and Loss totals.
func NewProfitAndLoss(f ProfitAndLossFields) ProfitAndLoss {
	pl := ProfitAndLoss{ProfitAndLossFields: f}
	pl.CostOfGoodsSold = f.BeginningInventory.Add(f.PurchasedInventory).Sub(f.EndingInventory)
	pl.GrossProfit = f.SalesRevenue.Sub(pl.CostOfGoodsSold)
	pl.TotalOperatingExpenses = sum(f.Payroll, f.Utilities, f.Rent, f.Advertising, f.Depreciation)
	pl.OperatingIncome = pl.GrossProfit.Sub(pl.TotalOperatingExpenses)
	pl.NetIncome = pl.OperatingIncome.Sub(f.InterestExpenses)
	return pl
}

// BalanceSheetFields are the raw ledger figures of the Balance Sheet.
type BalanceSheetFields struct {
	PPE              Amount `json:"ppe"`
	Cash             Amount `json:"cash"`
	Receivables      Amount `json:"receivables"`
	Inventory        Amount `json:"inventory"`
	LongTermDebt     Amount `json:"longTermDebt"`
	AccountsPayable  Amount `json:"accountsPayable"`
	ShortTermLoans   Amount `json:"shortTermLoans"`
	CommonStock      Amount `json:"commonStock"`
	RetainedEarnings Amount `json:"retainedEarnings"`
}

func (f *BalanceSheetFields) bindings() []binding {
	return []binding{
		{PPE, &f.PPE},
		{Cash, &f.Cash},
		{Receivables, &f.Receivables},
		{Inventory, &f.Inventory},
		{LongTermDebt, &f.LongTermDebt},
		{AccountsPayable, &f.AccountsPayable},
		{ShortTermLoans, &f.ShortTermLoans},
		{CommonStock, &f.CommonStock},
		{RetainedEarnings, &f.RetainedEarnings},
	}
}

// BalanceSheet is the Balance Sheet derived from its fields.
//
// The sheet is not forced to balance: Discrepancy is whatever the ledger says
// and callers are expected to show it when it is not zero.
type BalanceSheet struct {
	BalanceSheetFields
	CurrentAssets             Amount `json:"currentAssets"`
	TotalAssets               Amount `json:"totalAssets"`
	CurrentLiabilities        Amount `json:"currentLiabilities"`
	TotalLiabilities          Amount `json:"totalLiabilities"`
	TotalEquity               Amount `json:"totalEquity"`
	TotalLiabilitiesAndEquity Amount `json:"totalLiabilitiesAndEquity"`
	Discrepancy               Amount `json:"discrepancy"`
}

// NewBalanceSheet computes the Balance Sheet totals.
func NewBalanceSheet(f BalanceSheetFields) BalanceSheet {
	bs := BalanceSheet{BalanceSheetFields: f}
	bs.CurrentAssets = sum(f.Cash, f.Receivables, f.Inventory)
	bs.TotalAssets = f.PPE.Add(bs.CurrentAssets)
	bs.CurrentLiabilities = f.AccountsPayable.Add(f.ShortTermLoans)
	bs.TotalLiabilities = f.LongTermDebt.Add(bs.CurrentLiabilities)
	bs.TotalEquity = f.CommonStock.Add(f.RetainedEarnings)
	bs.TotalLiabilitiesAndEquity = bs.TotalLiabilities.Add(bs.TotalEquity)
	bs.Discrepancy = bs.TotalAssets.Sub(bs.TotalLiabilitiesAndEquity)
	return bs
}

// Balanced reports whether assets equal liabilities plus equity.
func (bs BalanceSheet) Balanced() bool { return bs.Discrepancy.IsZero() }

// StatementKeys returns the ledger keys read to build statement s.
func StatementKeys(s Statement) []string {
	var bs []binding
	switch s {
	case ProfitAndLossStatement:
		bs = new(ProfitAndLossFields).bindings()
	case BalanceSheetStatement:
		bs = new(BalanceSheetFields).bindings()
	}
	keys := make([]string, 0, len(bs))
	for _, b := range bs {
		keys = append(keys, b.key)
	}
	return keys
}
