package model

// Customer registry record. Customers and drivers are independent keyspaces;
// the same account id may hold both records at once.
type Customer struct {
	AccountId          string
	CustomerExternalId string
}
