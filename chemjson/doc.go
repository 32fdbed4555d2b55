//Package chemjson streams filled structures as line-delimited JSON, so
//programs written in other languages can read the results of a fill, for
//instance through a UNIX pipe. Each structure is one Info line, followed by
//one line per atom and then one line with the coordinates of each atom.
package chemjson
