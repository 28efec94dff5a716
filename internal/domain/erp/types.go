package erp

import "strings"

// TodayRate is the /todayrate response. Pointers distinguish a field
// the backend omitted from a genuine zero rate.
type TodayRate struct {
	GoldRate   *Number `json:"GOLDRATE"`
	SilverRate *Number `json:"SILVERRATE"`
}

// ItemRow is one element of the /list response.
type ItemRow struct {
	ItemID int `json:"ITEMID"`
}

// TagStatus is the /tag-details response. A non-empty TranDate means
// the tag has already been issued.
type TagStatus struct {
	TranDate string `json:"trandate"`
	TranNo   string `json:"tranno"`
}

// TagMeta is the /tagDetails/{tagno} response: stock metadata carried
// through to the issue record. Pointer fields may be absent upstream
// and are then omitted from the outgoing payload.
type TagMeta struct {
	WastPer    *Number `json:"wastper"`
	MCharge    *Number `json:"mcharge"`
	MCGram     *Number `json:"mcgram"`
	CompanyID  string  `json:"companyid"`
	LessWt     *Number `json:"lesswt"`
	SubItemID  *Number `json:"subitemid"`
	SaleMode   *string `json:"salemode"`
	GrsNet     *string `json:"grsnet"`
	DesignerID *string `json:"designerid"`
	ItemTypeID *Number `json:"itemtypeid"`
	ItemCtrID  *Number `json:"itemctrid"`
	Purity     *Number `json:"purity"`
	SalValue   *Number `json:"salvalue"`
}

// EstimationRow is one priced component row from /estimationTotal.
// A single tag may decompose into several rows (metal plus stone groups).
type EstimationRow struct {
	Pcs         Number `json:"PCS"`
	GrsWt       Number `json:"GRSWT"`
	NetWt       Number `json:"NETWT"`
	PureWt      Number `json:"PUREWT"`
	Rate        Number `json:"Rate"`
	Wastage     Number `json:"Wastage"`
	MC          Number `json:"MC"`
	StoneAmount Number `json:"StoneAmount"`
	MiscAmount  Number `json:"MiscAmount"`
	GSTPer      Number `json:"GSTPer"`
	MetalID     Number `json:"METALID"`
	CatCode     Number `json:"CATCODE"`
}

// StoneInput is one stone row from /stnInputs. CatCode is filled in
// from /stone-catcode after the fetch.
type StoneInput struct {
	StnItemID    Number `json:"stnitemid"`
	StnSubItemID Number `json:"stnsubitemid"`
	StnPcs       Number `json:"stnpcs"`
	StnWt        Number `json:"stnwt"`
	StnRate      Number `json:"stnrate"`
	StnAmt       Number `json:"stnamt"`
	CalcMode     string `json:"calcmode"`
	StoneUnit    string `json:"stoneunit"`
	CostID       string `json:"costid"`
	CompanyID    string `json:"companyid"`
	TagSno       string `json:"tagsno"`
	CatCode      string `json:"catcode"`
}

// StoneCatCode is the /stone-catcode response.
type StoneCatCode struct {
	StoneCatCode string `json:"stoneCatCode"`
}

// TranDateResponse is the /trandate response.
type TranDateResponse struct {
	TranDate string `json:"trandate"`
}

// IssueRecord is the transaction-item record posted to /estissue.
// The field set mirrors the backend's legacy table schema exactly:
// value fields the workflow always sets are concrete, fields that may
// be absent are pointers and omitted from the wire when nil.
type IssueRecord struct {
	TranNo      string  `json:"TRANNO"`
	TranDate    string  `json:"TRANDATE"`
	TranType    string  `json:"TRANTYPE"`
	Pcs         float64 `json:"PCS"`
	GrsWt       float64 `json:"GRSWT"`
	NetWt       float64 `json:"NETWT"`
	PureWt      float64 `json:"PUREWT"`
	TagNo       string  `json:"TAGNO"`
	ItemID      int     `json:"ITEMID"`
	WastPer     *Number `json:"WASTPER,omitempty"`
	Wastage     float64 `json:"WASTAGE"`
	MCGrm       float64 `json:"MCGRM"`
	MChrge      *Number `json:"MCHRGE,omitempty"`
	Amount      float64 `json:"AMOUNT"`
	Rate        float64 `json:"RATE"`
	BoardRate   float64 `json:"BOARDRATE"`
	CostID      string  `json:"COSTID"`
	CompanyID   string  `json:"COMPANYID"`
	EmpID       int     `json:"EMPID"`
	StnAmt      float64 `json:"STNAMT"`
	MiscAmt     float64 `json:"MISCAMT"`
	LessWt      *Number `json:"LESSWT,omitempty"`
	SubItemID   *Number `json:"SUBITEMID,omitempty"`
	SaleMode    *string `json:"SALEMODE,omitempty"`
	GrsNet      *string `json:"GRSNET,omitempty"`
	TagDesigner *string `json:"TAGDESIGNER,omitempty"`
	ItemTypeID  *Number `json:"ITEMTYPEID,omitempty"`
	ItemCtrID   *Number `json:"ITEMCTRID,omitempty"`
	Purity      *Number `json:"PURITY,omitempty"`
	TagsValue   *Number `json:"TAGSVALUE,omitempty"`
	TranStatus  string  `json:"TRANSTATUS"`
	RefNo       string  `json:"REFNO"`
	RefDate     *string `json:"REFDATE,omitempty"`
	Flag        string  `json:"FLAG"`
	TagGrsWt    float64 `json:"TAGGRSWT"`
	TagNetWt    float64 `json:"TAGNETWT"`
	TagRateID   float64 `json:"TAGRATEID"`
	TableCode   string  `json:"TABLECODE"`
	Incentive   string  `json:"INCENTIVE"`
	WeightUnit  string  `json:"WEIGHTUNIT"`
	CatCode     float64 `json:"CATCODE"`
	OCatCode    string  `json:"OCATCODE"`
	AcCode      string  `json:"ACCODE"`
	Alloy       string  `json:"ALLOY"`
	BatchNo     string  `json:"BATCHNO"`
	Remark1     string  `json:"REMARK1"`
	Remark2     string  `json:"REMARK2"`
	UserID      float64 `json:"USERID"`
	Updated     string  `json:"UPDATED"`
	UpTime      string  `json:"UPTIME"`
	SystemID    string  `json:"SYSTEMID"`
	Discount    string  `json:"DISCOUNT"`
	RunNo       string  `json:"RUNNO"`
	Cancel      string  `json:"CANCEL"`
	CashID      string  `json:"CASHID"`
	VatExm      string  `json:"VATEXM"`
	OrSno       string  `json:"ORSNO"`
	OrderNo     string  `json:"ORDERNO"`
	StoneUnit   *string `json:"STONEUNIT,omitempty"`
	ProType     string  `json:"PROTYPE"`
	MetalID     string  `json:"METALID"`
	Tax         float64 `json:"TAX"`
	SC          string  `json:"SC"`
	AdSC        string  `json:"ADSC"`
	AppVer      string  `json:"APPVER"`
	PSNo        string  `json:"PSNO"`
	DiscEmpID   string  `json:"DISCEMPID"`
	MarginID    string  `json:"MARGINID"`
	OtherAmt    string  `json:"OTHERAMT"`
	RateID      float64 `json:"RATEID"`
	EstBatchNo  string  `json:"ESTBATCHNO"`
	OEstBatchNo *string `json:"OESTBATCHNO,omitempty"`
	SetGrpID    string  `json:"SETGRPID"`
	Status      string  `json:"STATUS"`
	DueDate     string  `json:"DUEDATE"`
	Touch       string  `json:"TOUCH"`
	StkType     string  `json:"STKTYPE"`
	BarPrefix   string  `json:"BARPREFIX"`
	HSN         *string `json:"HSN,omitempty"`
}

// IssueAck is one element of the /estissue response. The backend is
// inconsistent about field casing, so both spellings are accepted.
type IssueAck struct {
	TagNoUpper string `json:"TAGNO"`
	TagNoLower string `json:"tagno"`
	SnoUpper   string `json:"SNO"`
	SnoLower   string `json:"sno"`
}

// Tag returns the acknowledged tag number regardless of casing.
func (a IssueAck) Tag() string {
	if a.TagNoUpper != "" {
		return strings.TrimSpace(a.TagNoUpper)
	}
	return strings.TrimSpace(a.TagNoLower)
}

// Sno returns the acknowledged sequence number regardless of casing.
func (a IssueAck) Sno() string {
	if a.SnoUpper != "" {
		return a.SnoUpper
	}
	return a.SnoLower
}

// StoneRecord is one stone line posted to /eststnissue.
type StoneRecord struct {
	Sno          string  `json:"sno"`
	IssSno       string  `json:"isssno"`
	IsmSno       string  `json:"ismsno"`
	TranNo       string  `json:"tranno"`
	TranDate     string  `json:"TRANDATE"`
	TranType     string  `json:"trantype"`
	StnPcs       float64 `json:"stnpcs"`
	StnWt        float64 `json:"stnwt"`
	StnRate      float64 `json:"stnrate"`
	StnAmt       float64 `json:"stnamt"`
	StnItemID    float64 `json:"stnitemid"`
	StnSubItemID float64 `json:"stnsubitemid"`
	CalcMode     string  `json:"calcmode"`
	StoneUnit    string  `json:"stoneunit"`
	StoneMode    string  `json:"stonemode"`
	TranStatus   string  `json:"transtatus"`
	CostID       string  `json:"costid"`
	CompanyID    string  `json:"companyid"`
	BatchNo      string  `json:"batchno"`
	SystemID     string  `json:"systemid"`
	VatExm       string  `json:"vatexm"`
	CatCode      string  `json:"catcode"`
	ProType      string  `json:"protype"`
	OCatCode     string  `json:"ocatcode"`
	Tax          float64 `json:"tax"`
	SC           float64 `json:"sc"`
	AdSC         float64 `json:"adsc"`
	AppVer       string  `json:"appver"`
	Discount     float64 `json:"discount"`
	TagStnPcs    float64 `json:"tagstnpcs"`
	TagStnWt     float64 `json:"tagstnwt"`
	TagSno       string  `json:"tagsno"`
	EstBatchNo   string  `json:"estbatchno"`
	CutID        int     `json:"cutid"`
	ColorID      int     `json:"colorid"`
	ClarityID    int     `json:"clarityid"`
	SetTypeID    int     `json:"settypeid"`
	ShapeID      int     `json:"shapeid"`
	Height       float64 `json:"height"`
	Width        float64 `json:"width"`
}

// TaxRecord is one GST entry posted to /estTaxTran. TaxType and
// Studded are sent as explicit nulls, matching what the backend's
// insert expects.
type TaxRecord struct {
	Sno       string  `json:"sno"`
	IssSno    string  `json:"isssno"`
	TranNo    int     `json:"tranno"`
	TranDate  string  `json:"trandate"`
	TranType  string  `json:"trantype"`
	BatchNo   string  `json:"batchno"`
	Amount    float64 `json:"amount"`
	TaxType   *string `json:"taxtype"`
	CostID    string  `json:"costid"`
	CompanyID string  `json:"companyid"`
	Studded   *string `json:"studded"`
	TaxID     string  `json:"taxid"`
	TaxPer    float64 `json:"taxper"`
	TaxAmount float64 `json:"taxamount"`
	TSno      int     `json:"tsno"`
}

// TaxDetail is one element of /getEstTaxTranDetails/{itemId}.
type TaxDetail struct {
	TaxID  string `json:"taxid"`
	TaxPer Number `json:"taxper"`
}

// TranDetails is the first element of /details/{tranno}.
type TranDetails struct {
	BillDate   string `json:"billDate"`
	EstBatchNo string `json:"est_batch_no"`
	BillType   string `json:"bill_type"`
}

// PrintMeta is the payload posted to /estprint.
type PrintMeta struct {
	BRefNo       string  `json:"brefno"`
	BillDate     string  `json:"billdate"`
	GoldRate     float64 `json:"goldrate"`
	SilverRate   float64 `json:"silverrate"`
	BillType     string  `json:"billtype"`
	Instrument   string  `json:"instrument"`
	SysIPAddress string  `json:"sysipaddress"`
	EstBatchNo   string  `json:"estbatchno"`
}

// PrintedTax is one tax line attached to a printed row.
type PrintedTax struct {
	TaxID     string `json:"tax_id"`
	TaxAmount Number `json:"tax_amount"`
}

// PrintedRow is one element of /printDetails/{estBatchNo}: a posted
// item row used to compose the receipt.
type PrintedRow struct {
	ItemID      int          `json:"itemid"`
	TagNo       string       `json:"tagno"`
	ItemName    string       `json:"itemname"`
	SubItemName string       `json:"subitemname"`
	Pcs         Number       `json:"pcs"`
	GrsWt       Number       `json:"grswt"`
	NetWt       Number       `json:"netwt"`
	Amount      Number       `json:"amount"`
	WastPer     Number       `json:"wastper"`
	MCGrm       Number       `json:"mcgrm"`
	TranNo      string       `json:"tranno"`
	TranDate    string       `json:"trandate"`
	CompanyID   string       `json:"company_id"`
	GoldRate    Number       `json:"goldrate"`
	SilverRate  Number       `json:"silverrate"`
	Taxes       []PrintedTax `json:"taxes"`
}

// Offer is the /offer response: an optional weight-based discount.
type Offer struct {
	Discount  Number `json:"discount"`
	NetWt     Number `json:"netwt"`
	BoardRate Number `json:"board_rate"`
}
