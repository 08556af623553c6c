/*
Package errors implements custom error interfaces for the whole
repository.

Error declarations should be limited to the kinds declared in this
package. Each error instance created during runtime should wrap one of
the registered root errors, so that error tests can match by kind
regardless of how many layers of context were added on top.

	if err := bucket.One(db, key, &obj); err != nil {
		return errors.Wrap(err, "cannot load swap")
	}

	...

	if errors.ErrNotFound.Is(err) {
		// react to a missing entity
	}

Extensions may register their own root errors using the Register
function, the same way this package declares the common set.
*/
package errors
