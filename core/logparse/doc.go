// Package logparse extracts match outcomes from game client log files.
//
// The client only records an absolute time once, when the log is opened:
//
//	Log: Log file open, 09/24/15 19:34:25
//
// Every later line carries a relative offset in seconds since start-up. Rank
// changes are logged as:
//
//	[1004.89] RankPoints: ClientSetSkill Playlist=10 Mu=28.6374 Sigma=2.4856 DeltaRankPoints=-10 RankPoints=735
//
// The parser locks onto the first start line and adds the whole seconds of each
// offset to it. A file whose start line is malformed, or that reports a result
// before any start line, yields no records at all. Individual result lines with bad numbers or an
// untracked playlist are skipped.
package logparse
