package metrics

// Namespace prefixes every metric exported by the parish API.
const Namespace = "parish"
