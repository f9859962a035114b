// Package signal defines the operational signals OpsHelm derives from email.
//
// A Signal is one of four variants (Ticket, Meeting, Task, Promise), each
// embedding the common Base. A single message may be projected into several
// signals; they share the message id, subject and body but are independent
// values. Signals are created by the extractor and only read afterwards.
//
// Consumers switch on the concrete type:
//
//	switch s := sig.(type) {
//	case *signal.Ticket:
//	    fmt.Println(s.TicketID, s.Priority)
//	case *signal.Promise:
//	    fmt.Println(s.PromisedBy)
//	}
package signal
