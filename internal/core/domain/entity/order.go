package entity

// StatusPending is the status every order starts in. The status set is open:
// clients may move an order to any string value later, but this is the only
// value the system itself assigns.
const StatusPending = "pending"
