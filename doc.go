/*
Package versions records every mutation of structured records as an
immutable, addressable revision in one or more backing repositories.

Application code stages record snapshots through a revision manager;
snapshots staged inside a transaction are buffered and flushed as one
atomic commit per repository when the outermost transaction completes.
Any historical snapshot can be retrieved and diffed afterwards.
*/
package versions
