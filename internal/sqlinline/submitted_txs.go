package sqlinline

const QInsertSubmittedTx = `--sql 4f1c2b0a-8d5e-4a31-9c76-b2f4a8e1d903
insert into submitted_txs(id, operation, caller, token, tx_hash, transfers, created_at)
values (gen_random_uuid(), $1::text, $2::text, nullif($3::text, ''), $4::text, coalesce($5::jsonb, '{}'::jsonb), now());
`

const QListSubmittedTxs = `--sql c9e07a52-64fd-4f2b-8a19-5d3e61b74c08
select id::text, operation, caller, coalesce(token, ''), tx_hash, transfers, created_at
from submitted_txs
order by created_at desc
limit $1::int;
`
