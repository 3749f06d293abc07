package model

import "time"

// Review statuses accepted by investment_projects_review_status_check.
const (
	ReviewStatusPending   = "Pending Review"
	ReviewStatusValidated = "Validated"
	ReviewStatusApproved  = "Approved"
	ReviewStatusRejected  = "Rejected"
)

// IsValidReviewStatus reports whether s is one of the four review statuses.
func IsValidReviewStatus(s string) bool {
	switch s {
	case ReviewStatusPending, ReviewStatusValidated, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

const OwnerTypeIndividual = "individual"

// InvestmentProject is a proposed station investment going through review.
type InvestmentProject struct {
	ID                int        `json:"id"`
	DepartmentType    string     `json:"departmentType"`
	RequestType       *string    `json:"requestType"`
	ProjectName       string     `json:"projectName"`
	ProjectCode       string     `json:"projectCode"`
	City              *string    `json:"city"`
	District          *string    `json:"district"`
	Area              float64    `json:"area"`
	ProjectStatus     *string    `json:"projectStatus"`
	ContractType      *string    `json:"contractType"`
	GoogleLocation    *string    `json:"googleLocation"`
	PriorityLevel     *string    `json:"priorityLevel"`
	OrderDate         *time.Time `json:"orderDate"`
	RequestSender     *string    `json:"requestSender"`
	SuperMarket       int        `json:"superMarket"`
	FuelStation       int        `json:"fuelStation"`
	Kiosks            int        `json:"kiosks"`
	RetailShop        int        `json:"retailShop"`
	DriveThrough      int        `json:"driveThrough"`
	ElementArea       float64    `json:"elementArea"`
	OwnerName         *string    `json:"ownerName"`
	OwnerContactNo    *string    `json:"ownerContactNo"`
	IDNo              *string    `json:"idNo"`
	NationalAddress   *string    `json:"nationalAddress"`
	Email             *string    `json:"email"`
	OwnerType         string     `json:"ownerType"`
	DesignFileURL     *string    `json:"designFileUrl"`
	DocumentsURL      *string    `json:"documentsUrl"`
	AutocadURL        *string    `json:"autocadUrl"`
	StationCode       *string    `json:"stationCode"`
	FeasibilityStatus *string    `json:"feasibilityStatus"`
	ContractStatus    *string    `json:"contractStatus"`
	ReviewStatus      string     `json:"reviewStatus"`
	PMComment         *string    `json:"pmComment"`
	CEOComment        *string    `json:"ceoComment"`
	CreatedBy         *int       `json:"createdBy"`
	UpdatedBy         *int       `json:"updatedBy"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// CreateInvestmentProjectRequest is the create payload.
type CreateInvestmentProjectRequest struct {
	DepartmentType  string   `json:"departmentType" binding:"required"`
	RequestType     *string  `json:"requestType"`
	ProjectName     string   `json:"projectName" binding:"required"`
	ProjectCode     string   `json:"projectCode" binding:"required"`
	City            *string  `json:"city"`
	District        *string  `json:"district"`
	Area            *float64 `json:"area"`
	ProjectStatus   *string  `json:"projectStatus"`
	ContractType    *string  `json:"contractType"`
	GoogleLocation  *string  `json:"googleLocation"`
	PriorityLevel   *string  `json:"priorityLevel"`
	OrderDate       *string  `json:"orderDate"` // YYYY-MM-DD
	RequestSender   *string  `json:"requestSender"`
	SuperMarket     *int     `json:"superMarket"`
	FuelStation     *int     `json:"fuelStation"`
	Kiosks          *int     `json:"kiosks"`
	RetailShop      *int     `json:"retailShop"`
	DriveThrough    *int     `json:"driveThrough"`
	ElementArea     *float64 `json:"elementArea"`
	OwnerName       *string  `json:"ownerName"`
	OwnerContactNo  *string  `json:"ownerContactNo"`
	IDNo            *string  `json:"idNo"`
	NationalAddress *string  `json:"nationalAddress"`
	Email           *string  `json:"email"`
	OwnerType       *string  `json:"ownerType"`
	DesignFileURL   *string  `json:"designFileUrl"`
	DocumentsURL    *string  `json:"documentsUrl"`
	AutocadURL      *string  `json:"autocadUrl"`
	StationCode     *string  `json:"stationCode"`
}

// ReviewRequest is the body of the review endpoint.
type ReviewRequest struct {
	ReviewStatus string  `json:"reviewStatus" binding:"required,oneof='Pending Review' Validated Approved Rejected"`
	Comment      *string `json:"comment"`
}

// ProjectStatusCounts is returned by the feasibility and contract stats endpoints.
type ProjectStatusCounts map[string]int64

// FieldKind tells the patch coercer how to convert a JSON value.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldInt
	FieldNumeric
	FieldDate
)

// PatchField maps an API key to its column.
type PatchField struct {
	Column   string
	Kind     FieldKind
	Required bool // may not be set to null
}

// ColumnAssignment is one validated "column = value" pair of a partial update.
type ColumnAssignment struct {
	Column string
	Value  any
}

// InvestmentProjectPatchFields is the complete set of keys accepted by the
// generic project update. Review columns are absent on purpose: they are only
// written through the review endpoint.
var InvestmentProjectPatchFields = map[string]PatchField{
	"departmentType":    {Column: "department_type", Kind: FieldText, Required: true},
	"requestType":       {Column: "request_type", Kind: FieldText},
	"projectName":       {Column: "project_name", Kind: FieldText, Required: true},
	"projectCode":       {Column: "project_code", Kind: FieldText, Required: true},
	"city":              {Column: "city", Kind: FieldText},
	"district":          {Column: "district", Kind: FieldText},
	"area":              {Column: "area", Kind: FieldNumeric, Required: true},
	"projectStatus":     {Column: "project_status", Kind: FieldText},
	"contractType":      {Column: "contract_type", Kind: FieldText},
	"googleLocation":    {Column: "google_location", Kind: FieldText},
	"priorityLevel":     {Column: "priority_level", Kind: FieldText},
	"orderDate":         {Column: "order_date", Kind: FieldDate},
	"requestSender":     {Column: "request_sender", Kind: FieldText},
	"superMarket":       {Column: "super_market", Kind: FieldInt, Required: true},
	"fuelStation":       {Column: "fuel_station", Kind: FieldInt, Required: true},
	"kiosks":            {Column: "kiosks", Kind: FieldInt, Required: true},
	"retailShop":        {Column: "retail_shop", Kind: FieldInt, Required: true},
	"driveThrough":      {Column: "drive_through", Kind: FieldInt, Required: true},
	"elementArea":       {Column: "element_area", Kind: FieldNumeric, Required: true},
	"ownerName":         {Column: "owner_name", Kind: FieldText},
	"ownerContactNo":    {Column: "owner_contact_no", Kind: FieldText},
	"idNo":              {Column: "id_no", Kind: FieldText},
	"nationalAddress":   {Column: "national_address", Kind: FieldText},
	"email":             {Column: "email", Kind: FieldText},
	"ownerType":         {Column: "owner_type", Kind: FieldText, Required: true},
	"designFileUrl":     {Column: "design_file_url", Kind: FieldText},
	"documentsUrl":      {Column: "documents_url", Kind: FieldText},
	"autocadUrl":        {Column: "autocad_url", Kind: FieldText},
	"stationCode":       {Column: "station_code", Kind: FieldText},
	"feasibilityStatus": {Column: "feasibility_status", Kind: FieldText},
	"contractStatus":    {Column: "contract_status", Kind: FieldText},
}

// Attachment kinds and the URL column each one fills.
const (
	AttachmentDesign    = "design"
	AttachmentDocuments = "documents"
	AttachmentAutocad   = "autocad"
)

var AttachmentColumns = map[string]string{
	AttachmentDesign:    "design_file_url",
	AttachmentDocuments: "documents_url",
	AttachmentAutocad:   "autocad_url",
}
