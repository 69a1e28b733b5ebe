package mpesa

import "encoding/json"

// tokenResponse is the Daraja OAuth grant. ExpiresIn arrives as a string.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// stkPushRequest is the Lipa Na M-Pesa Online initiation payload.
type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int    `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// STKPushResponse is Daraja's synchronous acknowledgement of an STK push.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type stkQueryRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

// QueryResponse reports the settled state of an earlier STK push.
// ResultCode "0" means the customer paid.
type QueryResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResultCode          string `json:"ResultCode"`
	ResultDesc          string `json:"ResultDesc"`
}

// apiError is Daraja's error envelope for non-2xx responses.
type apiError struct {
	RequestID    string `json:"requestId"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// CallbackEnvelope is the asynchronous payment result Daraja posts to the
// callback URL after the customer approves or rejects the prompt.
type CallbackEnvelope struct {
	Body struct {
		STKCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallback struct {
	MerchantRequestID string           `json:"MerchantRequestID"`
	CheckoutRequestID string           `json:"CheckoutRequestID"`
	ResultCode        int              `json:"ResultCode"`
	ResultDesc        string           `json:"ResultDesc"`
	CallbackMetadata  CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem values are heterogeneous (numbers and strings), so Value stays raw.
type MetadataItem struct {
	Name  string          `json:"Name"`
	Value json.RawMessage `json:"Value"`
}

// Succeeded reports whether the customer completed the payment.
func (c STKCallback) Succeeded() bool {
	return c.ResultCode == 0
}

// PaymentDetails pulls the fields worth persisting out of the metadata items.
// Only present on successful callbacks.
type PaymentDetails struct {
	AmountKES float64
	Receipt   string
	Phone     string
}

func (c STKCallback) PaymentDetails() PaymentDetails {
	var d PaymentDetails
	for _, item := range c.CallbackMetadata.Item {
		switch item.Name {
		case "Amount":
			_ = json.Unmarshal(item.Value, &d.AmountKES)
		case "MpesaReceiptNumber":
			_ = json.Unmarshal(item.Value, &d.Receipt)
		case "PhoneNumber":
			var n float64
			if err := json.Unmarshal(item.Value, &n); err == nil {
				d.Phone = trimFloat(n)
			} else {
				_ = json.Unmarshal(item.Value, &d.Phone)
			}
		}
	}
	return d
}
