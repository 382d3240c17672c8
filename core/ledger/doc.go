// Package ledger keeps the set of log files a scan has already read so later
// scans only parse what is new. The set is persisted as pretty printed JSON:
//
//	{
//	  "logFiles": [
//	    "Launch_1.log"
//	  ]
//	}
package ledger
