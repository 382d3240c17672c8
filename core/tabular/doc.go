// Package tabular reads and writes the per-category snapshot files.
//
// A snapshot is a comma separated text file. The first line is a header naming
// the columns, every following line is one match:
//
//	Date,Time,PlayList,DeltaPoints,RankPoints,Mu,Sigma
//	2015-09-24,19:51:09,1v1,-10,735,28.6374,2.4856
//
// Two schemas exist. Legacy files stop after RankPoints; Extended files add the
// skill mean and sigma, left empty when unknown. Decoding accepts both. Rows that do not
// parse are skipped individually; a file whose header is not recognized yields
// no records at all.
//
// Fields are never quoted. Category names and numbers never contain commas.
package tabular
