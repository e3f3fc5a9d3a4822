// Package comments provides the comment post-processing hook applied to every
// description before it is stored in the model.
//
// Strategies are selected by name from configuration:
//
//	parser, err := comments.Lookup(cfg.CommentsParser)
//
// Custom strategies implement Parser, or wrap a single function with Func,
// and are made available with Register.
package comments
