/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

Every body resp writes is JSON shaped like:

	{
		"apiVersion": "1.0",
		"data": {},
		"error": ""
	}

"apiVersion" is the version the router matched the request on, if any.
Empty fields are elided.
*/
package resp
