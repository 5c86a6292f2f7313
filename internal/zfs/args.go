package zfs

import "strconv"

// outputColumns is the column order ParseTriples expects.
const outputColumns = "name,property,value"

// DatasetArgs builds the `zfs get` argument vector for req.
func DatasetArgs(req DatasetRequest) []string {
	args := []string{"get", "-H"}
	if req.Parsable {
		args = append(args, "-p")
	}
	if req.Recurse {
		args = append(args, "-r")
	}
	if req.Depth != 0 {
		// -d implies recursion on its own
		args = append(args, "-d", strconv.Itoa(req.Depth))
	}
	if req.Type != "" {
		args = append(args, "-t", req.Type)
	}
	args = append(args, "-o", outputColumns, req.Properties, req.Name)
	return args
}

// PoolArgs builds the `zpool get` argument vector for req.
func PoolArgs(req PoolRequest) []string {
	args := []string{"get", "-H"}
	if req.Parsable {
		args = append(args, "-p")
	}
	args = append(args, "-o", outputColumns, req.Properties)
	if req.Name != "" {
		args = append(args, req.Name)
	}
	return args
}

// ListArgs builds the existence-check argument vector.
func ListArgs(name string) []string {
	return []string{"list", name}
}
